package payment

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/payment/dto"
)

type UseCase interface {
	CreatePayment(ctx context.Context, input *dto.CreatePaymentInput) (*model.Payment, error)
	GetPayment(ctx context.Context, id int64) (*model.Payment, error)
	ListPayments(ctx context.Context, filters *dto.PaymentFilters) ([]model.Payment, int, error)
	UpdatePayment(ctx context.Context, input *dto.UpdatePaymentInput) (*model.Payment, error)
	ProcessPayment(ctx context.Context, id int64) (*model.Payment, error)
	RefundPayment(ctx context.Context, id int64) (*model.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
	GetTableBill(ctx context.Context, tableID int64) (*model.TableBill, error)
}

// EventPublisher sends payment events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

const (
	EventPaymentProcessed = "PaymentProcessed"
	EventPaymentRefunded  = "PaymentRefunded"
)
