package dto

import (
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/shopspring/decimal"
)

type PaymentFilters struct {
	Status   *model.PaymentStatus
	OrderID  *int64
	Page     int
	PageSize int
}

type PaymentEventPayload struct {
	PaymentID     int64               `json:"paymentId"`
	OrderID       int64               `json:"orderId"`
	Amount        decimal.Decimal     `json:"amount"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	Status        model.PaymentStatus `json:"status"`
}
