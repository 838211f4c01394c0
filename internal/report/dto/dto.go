package dto

import (
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/shopspring/decimal"
)

type ReportFilters struct {
	From     *time.Time
	To       *time.Time
	UserID   *int64
	Page     int
	PageSize int
}

type SalesTotals struct {
	TotalSales  decimal.Decimal `db:"total_sales"`
	TotalOrders int             `db:"total_orders"`
}

type CategorySales struct {
	CategoryID int64           `db:"category_id" json:"categoryId"`
	Category   string          `db:"category" json:"category"`
	Quantity   int             `db:"quantity" json:"quantity"`
	Total      decimal.Decimal `db:"total" json:"total"`
}

type PaymentMethodSales struct {
	PaymentMethod model.PaymentMethod `db:"payment_method" json:"paymentMethod"`
	Count         int                 `db:"count" json:"count"`
	Total         decimal.Decimal     `db:"total" json:"total"`
}

type ItemSales struct {
	MenuItemID int64           `db:"menu_item_id" json:"menuItemId"`
	Name       string          `db:"name" json:"name"`
	Quantity   int             `db:"quantity" json:"quantity"`
	Total      decimal.Decimal `db:"total" json:"total"`
}

type PerformanceTotals struct {
	TotalOrders            int             `db:"total_orders"`
	TotalSales             decimal.Decimal `db:"total_sales"`
	AveragePreparationTime decimal.Decimal `db:"average_preparation_time"`
}

type StatusCount struct {
	Status model.OrderStatus `db:"status"`
	Count  int               `db:"count"`
}

// GenerateRequest is the body of a message on the report generation topic.
type GenerateRequest struct {
	ReportType string `json:"reportType"`
	ReportDate string `json:"reportDate"`
	UserID     int64  `json:"userId"`
}

const (
	ReportTypeSales       = "sales"
	ReportTypePerformance = "performance"
)
