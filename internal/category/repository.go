package category

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/category/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	FindMenuItems(ctx context.Context, categoryID int64) ([]model.MenuItem, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) (bool, error)
}
