package model

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentQR         PaymentMethod = "qr_payment"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentQR:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Payment struct {
	BaseModel
	OrderID       int64           `db:"order_id" json:"orderId"`
	ProcessedBy   int64           `db:"processed_by" json:"processedBy"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"paymentMethod"`
	Status        PaymentStatus   `db:"status" json:"status"`
	TransactionID *string         `db:"transaction_id" json:"transactionId"`
	Notes         *string         `db:"notes" json:"notes"`
}

// TableBill is what is still owed on a table.
type TableBill struct {
	TableID         int64           `json:"tableId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Orders          []Order         `json:"orders"`
	Payments        []Payment       `json:"payments"`
}
