package model

import "github.com/shopspring/decimal"

type InventoryItem struct {
	BaseModel
	Name         string          `db:"name" json:"name"`
	Description  *string         `db:"description" json:"description"`
	CurrentStock decimal.Decimal `db:"current_stock" json:"currentStock"`
	MinimumStock decimal.Decimal `db:"minimum_stock" json:"minimumStock"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Unit         *string         `db:"unit" json:"unit"`
	Supplier     *string         `db:"supplier" json:"supplier"`
	IsActive     bool            `db:"is_active" json:"isActive"`
}

// IsLowStock reports whether an active item is at or below its minimum.
func (i *InventoryItem) IsLowStock() bool {
	return i.IsActive && i.CurrentStock.LessThanOrEqual(i.MinimumStock)
}

// Ingredient links a menu item to the inventory item it consumes.
type Ingredient struct {
	BaseModel
	MenuItemID      int64           `db:"menu_item_id" json:"menuItemId"`
	InventoryItemID int64           `db:"inventory_item_id" json:"inventoryItemId"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
	Unit            *string         `db:"unit" json:"unit"`
}
