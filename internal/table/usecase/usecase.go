package usecase

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/table"
	"github.com/fekuna/omnipos-restaurant-service/internal/table/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"go.uber.org/zap"
)

var errTableNotAvailable = apperror.InvalidState("error.table_not_available", "Table is not available", nil)

type tableUseCase struct {
	repo   table.Repository
	tx     postgres.TxManager
	logger logger.ZapLogger
}

func NewTableUseCase(repo table.Repository, tx postgres.TxManager, log logger.ZapLogger) table.UseCase {
	return &tableUseCase{
		repo:   repo,
		tx:     tx,
		logger: log,
	}
}

func (uc *tableUseCase) CreateTable(ctx context.Context, input *dto.CreateTableInput) (*model.Table, error) {
	t := &model.Table{
		TableNumber: input.TableNumber,
		Capacity:    input.Capacity,
		Status:      model.TableAvailable,
		Location:    input.Location,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *tableUseCase) GetTable(ctx context.Context, id int64) (*model.Table, error) {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.NotFound("Table", id)
	}
	return t, nil
}

func (uc *tableUseCase) ListTables(ctx context.Context, filters *dto.TableFilters) ([]model.Table, int, error) {
	if filters.Status != nil && !filters.Status.Valid() {
		return nil, 0, apperror.Validation("invalid table status")
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *tableUseCase) ListAvailableTables(ctx context.Context) ([]model.Table, error) {
	status := model.TableAvailable
	tables, _, err := uc.repo.FindAll(ctx, &dto.TableFilters{Status: &status})
	return tables, err
}

func (uc *tableUseCase) UpdateTable(ctx context.Context, input *dto.UpdateTableInput) (*model.Table, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperror.Validation("invalid table status")
	}

	var t *model.Table
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		t, err = uc.repo.FindByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if t == nil {
			return apperror.NotFound("Table", input.ID)
		}

		if input.TableNumber != nil {
			t.TableNumber = *input.TableNumber
		}
		if input.Capacity != nil {
			t.Capacity = *input.Capacity
		}
		if input.Status != nil {
			t.Status = *input.Status
		}
		if input.Location != nil {
			t.Location = input.Location
		}
		return uc.repo.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *tableUseCase) DeleteTable(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Table", id)
	}
	return nil
}

func (uc *tableUseCase) OpenTable(ctx context.Context, id int64) (*model.Table, error) {
	return uc.transition(ctx, id, model.TableOccupied, true)
}

func (uc *tableUseCase) ReserveTable(ctx context.Context, id int64) (*model.Table, error) {
	return uc.transition(ctx, id, model.TableReserved, true)
}

// CloseTable frees the table whatever state it is in.
func (uc *tableUseCase) CloseTable(ctx context.Context, id int64) (*model.Table, error) {
	return uc.transition(ctx, id, model.TableAvailable, false)
}

func (uc *tableUseCase) transition(ctx context.Context, id int64, to model.TableStatus, requireAvailable bool) (*model.Table, error) {
	var updated *model.Table
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return apperror.NotFound("Table", id)
		}
		if requireAvailable && t.Status != model.TableAvailable {
			return errTableNotAvailable
		}

		updated, err = uc.repo.UpdateStatus(ctx, id, to)
		if err != nil {
			return err
		}
		if updated == nil {
			return apperror.NotFound("Table", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("table status changed", zap.Int64("table_id", id), zap.String("status", string(to)))
	return updated, nil
}
