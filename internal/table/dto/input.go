package dto

import "github.com/fekuna/omnipos-restaurant-service/internal/model"

type CreateTableInput struct {
	TableNumber int     `json:"tableNumber" binding:"required,min=1"`
	Capacity    int     `json:"capacity" binding:"required,min=1"`
	Location    *string `json:"location"`
}

// UpdateTableInput is a partial update: nil fields are left unchanged.
type UpdateTableInput struct {
	ID          int64              `json:"-"`
	TableNumber *int               `json:"tableNumber" binding:"omitempty,min=1"`
	Capacity    *int               `json:"capacity" binding:"omitempty,min=1"`
	Status      *model.TableStatus `json:"status"`
	Location    *string            `json:"location"`
}
