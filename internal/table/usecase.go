package table

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/table/dto"
)

type UseCase interface {
	CreateTable(ctx context.Context, input *dto.CreateTableInput) (*model.Table, error)
	GetTable(ctx context.Context, id int64) (*model.Table, error)
	ListTables(ctx context.Context, filters *dto.TableFilters) ([]model.Table, int, error)
	ListAvailableTables(ctx context.Context) ([]model.Table, error)
	UpdateTable(ctx context.Context, input *dto.UpdateTableInput) (*model.Table, error)
	DeleteTable(ctx context.Context, id int64) error
	OpenTable(ctx context.Context, id int64) (*model.Table, error)
	ReserveTable(ctx context.Context, id int64) (*model.Table, error)
	CloseTable(ctx context.Context, id int64) (*model.Table, error)
}
