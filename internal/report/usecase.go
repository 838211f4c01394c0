package report

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/report/dto"
)

type UseCase interface {
	GenerateSalesReport(ctx context.Context, date time.Time) (*model.SalesReport, error)
	GetSalesReport(ctx context.Context, id int64) (*model.SalesReport, error)
	ListSalesReports(ctx context.Context, filters *dto.ReportFilters) ([]model.SalesReport, int, error)
	GeneratePerformanceReport(ctx context.Context, userID int64, date time.Time) (*model.PerformanceReport, error)
	GetPerformanceReport(ctx context.Context, id int64) (*model.PerformanceReport, error)
	ListPerformanceReports(ctx context.Context, filters *dto.ReportFilters) ([]model.PerformanceReport, int, error)
}
