package menu

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/menu/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, id int64) (*model.MenuItem, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.MenuItem, error)
	FindAll(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error)
	Update(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, id int64) (bool, error)
}
