package model

type Category struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	ImageURL    *string `db:"image_url" json:"imageUrl"`
	IsActive    bool    `db:"is_active" json:"isActive"`

	MenuItems []MenuItem `db:"-" json:"menuItems,omitempty"`
}
