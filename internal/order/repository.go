package order

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/order/dto"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItem(ctx context.Context, item *model.OrderItem) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderItem, error)
	Update(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error
	Delete(ctx context.Context, id int64) (bool, error)
}
