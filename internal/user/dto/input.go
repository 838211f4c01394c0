package dto

import "github.com/fekuna/omnipos-restaurant-service/internal/model"

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type CreateUserInput struct {
	Email     string     `json:"email" binding:"required,email"`
	Password  string     `json:"password" binding:"required,min=6"`
	FirstName string     `json:"firstName" binding:"required"`
	LastName  string     `json:"lastName" binding:"required"`
	Role      model.Role `json:"role"`
}

// UpdateUserInput is a partial update: nil fields are left unchanged.
type UpdateUserInput struct {
	ID        int64       `json:"-"`
	Email     *string     `json:"email" binding:"omitempty,email"`
	Password  *string     `json:"password" binding:"omitempty,min=6"`
	FirstName *string     `json:"firstName"`
	LastName  *string     `json:"lastName"`
	Role      *model.Role `json:"role"`
	IsActive  *bool       `json:"isActive"`
}
