package report

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/report/dto"
)

// Repository aggregates orders and payments created in [from, to) and
// stores the resulting snapshots.
type Repository interface {
	SalesTotals(ctx context.Context, from, to time.Time) (*dto.SalesTotals, error)
	SalesByCategory(ctx context.Context, from, to time.Time) ([]dto.CategorySales, error)
	SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]dto.PaymentMethodSales, error)
	TopSellingItems(ctx context.Context, from, to time.Time, limit int) ([]dto.ItemSales, error)
	CreateSalesReport(ctx context.Context, report *model.SalesReport) error
	FindSalesReportByID(ctx context.Context, id int64) (*model.SalesReport, error)
	FindSalesReports(ctx context.Context, filters *dto.ReportFilters) ([]model.SalesReport, int, error)

	PerformanceTotals(ctx context.Context, userID int64, from, to time.Time) (*dto.PerformanceTotals, error)
	OrderStatusBreakdown(ctx context.Context, userID int64, from, to time.Time) ([]dto.StatusCount, error)
	CreatePerformanceReport(ctx context.Context, report *model.PerformanceReport) error
	FindPerformanceReportByID(ctx context.Context, id int64) (*model.PerformanceReport, error)
	FindPerformanceReports(ctx context.Context, filters *dto.ReportFilters) ([]model.PerformanceReport, int, error)
}
