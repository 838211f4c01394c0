package payment

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/payment/dto"
)

type Repository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, id int64) (*model.Payment, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*model.Payment, error)
	FindAll(ctx context.Context, filters *dto.PaymentFilters) ([]model.Payment, int, error)
	FindByTable(ctx context.Context, tableID int64, status model.PaymentStatus) ([]model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) error
	UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus) (*model.Payment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
