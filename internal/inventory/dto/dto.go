package dto

type InventoryFilters struct {
	IsActive *bool
	LowStock bool // current_stock <= minimum_stock on active items
	Page     int
	PageSize int
}
