package inventory

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// Inventory items
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id int64) (*model.InventoryItem, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.InventoryItem, int, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id int64) (bool, error)

	// AdjustStock adds delta to the current stock in one statement.
	AdjustStock(ctx context.Context, id int64, delta decimal.Decimal) (*model.InventoryItem, error)

	// Ingredients
	CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error
	FindIngredientsByMenuItem(ctx context.Context, menuItemID int64) ([]model.Ingredient, error)
	DeleteIngredient(ctx context.Context, id int64) (bool, error)
}
