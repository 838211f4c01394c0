package model

import (
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	BaseModel
	CategoryID  int64              `db:"category_id" json:"categoryId"`
	Name        string             `db:"name" json:"name"`
	Description string             `db:"description" json:"description"`
	Price       decimal.Decimal    `db:"price" json:"price"`
	IsAvailable bool               `db:"is_available" json:"isAvailable"`
	ImageURL    *string            `db:"image_url" json:"imageUrl"`
	Variations  types.NullJSONText `db:"variations" json:"variations"`
	Category    *Category          `db:"-" json:"category,omitempty"`
}
