package dto

type CategoryFilters struct {
	IsActive *bool // nil lists every category
	Page     int
	PageSize int
}
