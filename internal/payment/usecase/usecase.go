package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/order"
	orderdto "github.com/fekuna/omnipos-restaurant-service/internal/order/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/payment"
	"github.com/fekuna/omnipos-restaurant-service/internal/payment/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/user"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/broker"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type paymentUseCase struct {
	repo   payment.Repository
	orders order.Repository
	users  user.Repository
	tx     postgres.TxManager
	events payment.EventPublisher
	topic  string
	logger logger.ZapLogger
}

func NewPaymentUseCase(
	repo payment.Repository,
	orders order.Repository,
	users user.Repository,
	tx postgres.TxManager,
	events payment.EventPublisher,
	topic string,
	log logger.ZapLogger,
) payment.UseCase {
	return &paymentUseCase{
		repo:   repo,
		orders: orders,
		users:  users,
		tx:     tx,
		events: events,
		topic:  topic,
		logger: log,
	}
}

func (uc *paymentUseCase) CreatePayment(ctx context.Context, input *dto.CreatePaymentInput) (*model.Payment, error) {
	if !input.PaymentMethod.Valid() {
		return nil, apperror.Validation("invalid payment method")
	}
	if input.Amount.IsNegative() {
		return nil, apperror.Validation("amount must not be negative")
	}

	o, err := uc.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("Order", input.OrderID)
	}

	cashier, err := uc.users.FindByID(ctx, input.ProcessedBy)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.NotFound("User", input.ProcessedBy)
	}

	p := &model.Payment{
		OrderID:       o.ID,
		ProcessedBy:   cashier.ID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Status:        model.PaymentPending,
		TransactionID: input.TransactionID,
		Notes:         input.Notes,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("payment created",
		zap.Int64("payment_id", p.ID),
		zap.Int64("order_id", p.OrderID),
		zap.String("amount", p.Amount.String()),
	)
	return p, nil
}

func (uc *paymentUseCase) GetPayment(ctx context.Context, id int64) (*model.Payment, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Payment", id)
	}
	return p, nil
}

func (uc *paymentUseCase) ListPayments(ctx context.Context, filters *dto.PaymentFilters) ([]model.Payment, int, error) {
	if filters.Status != nil && !filters.Status.Valid() {
		return nil, 0, apperror.Validation("invalid payment status")
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *paymentUseCase) UpdatePayment(ctx context.Context, input *dto.UpdatePaymentInput) (*model.Payment, error) {
	if input.PaymentMethod != nil && !input.PaymentMethod.Valid() {
		return nil, apperror.Validation("invalid payment method")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperror.Validation("invalid payment status")
	}
	if input.Amount != nil && input.Amount.IsNegative() {
		return nil, apperror.Validation("amount must not be negative")
	}

	var p *model.Payment
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.repo.FindByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("Payment", input.ID)
		}

		if input.Amount != nil {
			p.Amount = *input.Amount
		}
		if input.PaymentMethod != nil {
			p.PaymentMethod = *input.PaymentMethod
		}
		if input.Status != nil {
			p.Status = *input.Status
		}
		if input.TransactionID != nil {
			p.TransactionID = input.TransactionID
		}
		if input.Notes != nil {
			p.Notes = input.Notes
		}
		p.UpdatedAt = time.Now()

		return uc.repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ProcessPayment marks the payment completed whatever its current status.
func (uc *paymentUseCase) ProcessPayment(ctx context.Context, id int64) (*model.Payment, error) {
	return uc.setStatus(ctx, id, model.PaymentCompleted, payment.EventPaymentProcessed)
}

// RefundPayment marks the payment refunded whatever its current status.
func (uc *paymentUseCase) RefundPayment(ctx context.Context, id int64) (*model.Payment, error) {
	return uc.setStatus(ctx, id, model.PaymentRefunded, payment.EventPaymentRefunded)
}

func (uc *paymentUseCase) setStatus(ctx context.Context, id int64, status model.PaymentStatus, eventType string) (*model.Payment, error) {
	var p *model.Payment
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := uc.repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("Payment", id)
		}

		p, err = uc.repo.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Payment", id)
	}

	uc.logger.Info("payment status changed",
		zap.Int64("payment_id", p.ID),
		zap.String("status", string(p.Status)),
	)
	go uc.publish(context.Background(), eventType, p)
	return p, nil
}

func (uc *paymentUseCase) DeletePayment(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Payment", id)
	}
	return nil
}

// GetTableBill sums every order on the table, cancelled ones included, and
// subtracts its completed payments. Everything is read from one snapshot.
// A table with no orders gets a zero bill.
func (uc *paymentUseCase) GetTableBill(ctx context.Context, tableID int64) (*model.TableBill, error) {
	bill := &model.TableBill{
		TableID:     tableID,
		TotalAmount: decimal.Zero,
		PaidAmount:  decimal.Zero,
		Orders:      []model.Order{},
	}

	err := uc.tx.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		orders, _, err := uc.orders.FindAll(ctx, &orderdto.OrderFilters{TableID: &tableID})
		if err != nil {
			return err
		}
		for _, o := range orders {
			bill.Orders = append(bill.Orders, o)
			bill.TotalAmount = bill.TotalAmount.Add(o.TotalAmount)
		}

		bill.Payments, err = uc.repo.FindByTable(ctx, tableID, model.PaymentCompleted)
		if err != nil {
			return err
		}
		for _, p := range bill.Payments {
			bill.PaidAmount = bill.PaidAmount.Add(p.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	bill.RemainingAmount = bill.TotalAmount.Sub(bill.PaidAmount)
	return bill, nil
}

func (uc *paymentUseCase) publish(ctx context.Context, eventType string, p *model.Payment) {
	if uc.events == nil {
		return
	}

	msg, err := broker.NewEvent(eventType, dto.PaymentEventPayload{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
	})
	if err != nil {
		uc.logger.Error("failed to encode payment event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := uc.events.Publish(ctx, uc.topic, strconv.FormatInt(p.ID, 10), msg); err != nil {
		uc.logger.Error("failed to publish payment event",
			zap.String("event_type", eventType),
			zap.Int64("payment_id", p.ID),
			zap.Error(err),
		)
	}
}
