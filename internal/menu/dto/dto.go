package dto

type MenuItemFilters struct {
	CategoryID  *int64 `json:"categoryId,omitempty"`
	IsAvailable *bool  `json:"isAvailable,omitempty"`
	SearchQuery string `json:"search,omitempty"` // name or description
	Page        int    `json:"page"`
	PageSize    int    `json:"pageSize"`
}
