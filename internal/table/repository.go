package table

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/table/dto"
)

type Repository interface {
	Create(ctx context.Context, table *model.Table) error
	FindByID(ctx context.Context, id int64) (*model.Table, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*model.Table, error)
	FindAll(ctx context.Context, filters *dto.TableFilters) ([]model.Table, int, error)
	Update(ctx context.Context, table *model.Table) error
	UpdateStatus(ctx context.Context, id int64, status model.TableStatus) (*model.Table, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
