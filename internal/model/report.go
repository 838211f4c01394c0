package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// SalesReport is a write-once snapshot of one day of sales.
type SalesReport struct {
	ID                   int64           `db:"id" json:"id"`
	ReportDate           time.Time       `db:"report_date" json:"reportDate"`
	TotalSales           decimal.Decimal `db:"total_sales" json:"totalSales"`
	TotalOrders          int             `db:"total_orders" json:"totalOrders"`
	AverageOrderValue    decimal.Decimal `db:"average_order_value" json:"averageOrderValue"`
	SalesByCategory      types.JSONText  `db:"sales_by_category" json:"salesByCategory"`
	SalesByPaymentMethod types.JSONText  `db:"sales_by_payment_method" json:"salesByPaymentMethod"`
	TopSellingItems      types.JSONText  `db:"top_selling_items" json:"topSellingItems"`
	CreatedAt            time.Time       `db:"created_at" json:"createdAt"`
}

// PerformanceReport is a write-once snapshot of one staff member's day.
type PerformanceReport struct {
	ID                     int64           `db:"id" json:"id"`
	UserID                 int64           `db:"user_id" json:"userId"`
	ReportDate             time.Time       `db:"report_date" json:"reportDate"`
	TotalOrders            int             `db:"total_orders" json:"totalOrders"`
	TotalSales             decimal.Decimal `db:"total_sales" json:"totalSales"`
	AverageOrderValue      decimal.Decimal `db:"average_order_value" json:"averageOrderValue"`
	AveragePreparationTime decimal.Decimal `db:"average_preparation_time" json:"averagePreparationTime"`
	OrderStatusBreakdown   types.JSONText  `db:"order_status_breakdown" json:"orderStatusBreakdown"`
	CreatedAt              time.Time       `db:"created_at" json:"createdAt"`
}
