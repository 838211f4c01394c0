package inventory

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	CreateItem(ctx context.Context, input *dto.CreateInventoryItemInput) (*model.InventoryItem, error)
	GetItem(ctx context.Context, id int64) (*model.InventoryItem, error)
	ListItems(ctx context.Context, filters *dto.InventoryFilters) ([]model.InventoryItem, int, error)
	ListLowStock(ctx context.Context, page, pageSize int) ([]model.InventoryItem, int, error)
	UpdateItem(ctx context.Context, input *dto.UpdateInventoryItemInput) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, id int64) error
	UpdateStock(ctx context.Context, id int64, delta decimal.Decimal) (*model.InventoryItem, error)

	AddIngredient(ctx context.Context, input *dto.CreateIngredientInput) (*model.Ingredient, error)
	ListIngredients(ctx context.Context, menuItemID int64) ([]model.Ingredient, error)
	RemoveIngredient(ctx context.Context, id int64) error
}
