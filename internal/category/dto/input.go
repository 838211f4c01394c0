package dto

type CreateCategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

// UpdateCategoryInput is a partial update: nil fields are left unchanged.
type UpdateCategoryInput struct {
	ID          int64   `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
}
