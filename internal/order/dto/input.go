package dto

import "github.com/fekuna/omnipos-restaurant-service/internal/model"

type CreateOrderInput struct {
	TableID    int64                  `json:"tableId" binding:"required"`
	WaiterID   int64                  `json:"waiterId"` // defaults to the caller
	Notes      *string                `json:"notes"`
	OrderItems []CreateOrderItemInput `json:"orderItems" binding:"required,min=1,dive"`
}

type CreateOrderItemInput struct {
	MenuItemID          int64   `json:"menuItemId" binding:"required"`
	Quantity            int     `json:"quantity" binding:"required,min=1"`
	SpecialInstructions *string `json:"specialInstructions"`
}

// UpdateOrderInput is a partial update: nil fields are left unchanged.
type UpdateOrderInput struct {
	ID     int64              `json:"-"`
	Status *model.OrderStatus `json:"status"`
	Notes  *string            `json:"notes"`
}
