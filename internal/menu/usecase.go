package menu

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/menu/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
)

type UseCase interface {
	CreateMenuItem(ctx context.Context, input *dto.CreateMenuItemInput) (*model.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*model.MenuItem, error)
	ListMenuItems(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error)
	UpdateMenuItem(ctx context.Context, input *dto.UpdateMenuItemInput) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) error
}
