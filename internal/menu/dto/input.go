package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type CreateMenuItemInput struct {
	CategoryID  int64           `json:"categoryId" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"imageUrl"`
	Variations  json.RawMessage `json:"variations"`
}

// UpdateMenuItemInput is a partial update: nil fields are left unchanged.
type UpdateMenuItemInput struct {
	ID          int64            `json:"-"`
	CategoryID  *int64           `json:"categoryId"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"isAvailable"`
	ImageURL    *string          `json:"imageUrl"`
	Variations  json.RawMessage  `json:"variations"`
}
