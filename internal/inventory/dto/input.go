package dto

import "github.com/shopspring/decimal"

type CreateInventoryItemInput struct {
	Name         string          `json:"name" binding:"required"`
	Description  *string         `json:"description"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Unit         *string         `json:"unit"`
	Supplier     *string         `json:"supplier"`
}

// UpdateInventoryItemInput is a partial update: nil fields are left unchanged.
type UpdateInventoryItemInput struct {
	ID           int64            `json:"-"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	CurrentStock *decimal.Decimal `json:"currentStock"`
	MinimumStock *decimal.Decimal `json:"minimumStock"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	Unit         *string          `json:"unit"`
	Supplier     *string          `json:"supplier"`
	IsActive     *bool            `json:"isActive"`
}

type CreateIngredientInput struct {
	MenuItemID      int64           `json:"menuItemId" binding:"required"`
	InventoryItemID int64           `json:"inventoryItemId" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            *string         `json:"unit"`
}
