package order

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/order/dto"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	GetOrderTotal(ctx context.Context, id int64) (decimal.Decimal, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// EventPublisher sends order lifecycle events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
)
