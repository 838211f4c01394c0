package dto

import (
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/shopspring/decimal"
)

type CreatePaymentInput struct {
	OrderID       int64               `json:"orderId" binding:"required"`
	ProcessedBy   int64               `json:"processedBy"` // defaults to the caller
	Amount        decimal.Decimal     `json:"amount"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" binding:"required"`
	TransactionID *string             `json:"transactionId"`
	Notes         *string             `json:"notes"`
}

// UpdatePaymentInput is a partial update: nil fields are left unchanged.
type UpdatePaymentInput struct {
	ID            int64                `json:"-"`
	Amount        *decimal.Decimal     `json:"amount"`
	PaymentMethod *model.PaymentMethod `json:"paymentMethod"`
	Status        *model.PaymentStatus `json:"status"`
	TransactionID *string              `json:"transactionId"`
	Notes         *string              `json:"notes"`
}
