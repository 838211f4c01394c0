package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/report"
	"github.com/fekuna/omnipos-restaurant-service/internal/report/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/user"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const topSellingLimit = 5

type reportUseCase struct {
	repo   report.Repository
	users  user.Repository
	tx     postgres.TxManager
	logger logger.ZapLogger
}

func NewReportUseCase(repo report.Repository, users user.Repository, tx postgres.TxManager, log logger.ZapLogger) report.UseCase {
	return &reportUseCase{
		repo:   repo,
		users:  users,
		tx:     tx,
		logger: log,
	}
}

// GenerateSalesReport snapshots the day containing date. A day can only be
// snapshotted once.
func (uc *reportUseCase) GenerateSalesReport(ctx context.Context, date time.Time) (*model.SalesReport, error) {
	from, to := dayBounds(date)
	rpt := &model.SalesReport{ReportDate: from}

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		totals, err := uc.repo.SalesTotals(ctx, from, to)
		if err != nil {
			return err
		}
		byCategory, err := uc.repo.SalesByCategory(ctx, from, to)
		if err != nil {
			return err
		}
		byMethod, err := uc.repo.SalesByPaymentMethod(ctx, from, to)
		if err != nil {
			return err
		}
		topItems, err := uc.repo.TopSellingItems(ctx, from, to, topSellingLimit)
		if err != nil {
			return err
		}

		rpt.TotalSales = totals.TotalSales
		rpt.TotalOrders = totals.TotalOrders
		rpt.AverageOrderValue = average(totals.TotalSales, totals.TotalOrders)
		if rpt.SalesByCategory, err = toJSONText(byCategory); err != nil {
			return err
		}
		if rpt.SalesByPaymentMethod, err = toJSONText(byMethod); err != nil {
			return err
		}
		if rpt.TopSellingItems, err = toJSONText(topItems); err != nil {
			return err
		}

		return uc.repo.CreateSalesReport(ctx, rpt)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("sales report generated",
		zap.Int64("report_id", rpt.ID),
		zap.String("report_date", from.Format(dto.DateLayout)),
		zap.Int("total_orders", rpt.TotalOrders),
	)
	return rpt, nil
}

func (uc *reportUseCase) GetSalesReport(ctx context.Context, id int64) (*model.SalesReport, error) {
	rpt, err := uc.repo.FindSalesReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rpt == nil {
		return nil, apperror.NotFound("Sales report", id)
	}
	return rpt, nil
}

func (uc *reportUseCase) ListSalesReports(ctx context.Context, filters *dto.ReportFilters) ([]model.SalesReport, int, error) {
	filters.UserID = nil
	return uc.repo.FindSalesReports(ctx, filters)
}

// GeneratePerformanceReport snapshots the orders userID took on the day
// containing date.
func (uc *reportUseCase) GeneratePerformanceReport(ctx context.Context, userID int64, date time.Time) (*model.PerformanceReport, error) {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("User", userID)
	}

	from, to := dayBounds(date)
	rpt := &model.PerformanceReport{UserID: u.ID, ReportDate: from}

	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		totals, err := uc.repo.PerformanceTotals(ctx, u.ID, from, to)
		if err != nil {
			return err
		}
		counts, err := uc.repo.OrderStatusBreakdown(ctx, u.ID, from, to)
		if err != nil {
			return err
		}

		breakdown := make(map[model.OrderStatus]int, len(counts))
		for _, sc := range counts {
			breakdown[sc.Status] = sc.Count
		}

		rpt.TotalOrders = totals.TotalOrders
		rpt.TotalSales = totals.TotalSales
		rpt.AverageOrderValue = average(totals.TotalSales, totals.TotalOrders)
		rpt.AveragePreparationTime = totals.AveragePreparationTime
		if rpt.OrderStatusBreakdown, err = toJSONText(breakdown); err != nil {
			return err
		}

		return uc.repo.CreatePerformanceReport(ctx, rpt)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("performance report generated",
		zap.Int64("report_id", rpt.ID),
		zap.Int64("user_id", rpt.UserID),
		zap.String("report_date", from.Format(dto.DateLayout)),
	)
	return rpt, nil
}

func (uc *reportUseCase) GetPerformanceReport(ctx context.Context, id int64) (*model.PerformanceReport, error) {
	rpt, err := uc.repo.FindPerformanceReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rpt == nil {
		return nil, apperror.NotFound("Performance report", id)
	}
	return rpt, nil
}

func (uc *reportUseCase) ListPerformanceReports(ctx context.Context, filters *dto.ReportFilters) ([]model.PerformanceReport, int, error) {
	return uc.repo.FindPerformanceReports(ctx, filters)
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

func toJSONText(v interface{}) (types.JSONText, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return types.JSONText(b), nil
}
