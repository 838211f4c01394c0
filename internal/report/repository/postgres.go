package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/report/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) SalesTotals(ctx context.Context, from, to time.Time) (*dto.SalesTotals, error) {
	query := `
        SELECT COALESCE(SUM(total_amount), 0) AS total_sales, COUNT(*) AS total_orders
        FROM orders
        WHERE created_at >= $1 AND created_at < $2 AND status <> 'cancelled'
    `
	var totals dto.SalesTotals
	if err := postgres.Conn(ctx, r.DB).GetContext(ctx, &totals, query, from, to); err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *PGRepository) SalesByCategory(ctx context.Context, from, to time.Time) ([]dto.CategorySales, error) {
	query := `
        SELECT c.id AS category_id, c.name AS category,
               SUM(oi.quantity) AS quantity, SUM(oi.total_price) AS total
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        JOIN menu_items m ON m.id = oi.menu_item_id
        JOIN categories c ON c.id = m.category_id
        WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> 'cancelled'
        GROUP BY c.id, c.name
        ORDER BY total DESC, c.name ASC
    `
	rows := []dto.CategorySales{}
	if err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PGRepository) SalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]dto.PaymentMethodSales, error) {
	query := `
        SELECT payment_method, COUNT(*) AS count, SUM(amount) AS total
        FROM payments
        WHERE created_at >= $1 AND created_at < $2 AND status = 'completed'
        GROUP BY payment_method
        ORDER BY payment_method ASC
    `
	rows := []dto.PaymentMethodSales{}
	if err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PGRepository) TopSellingItems(ctx context.Context, from, to time.Time, limit int) ([]dto.ItemSales, error) {
	query := `
        SELECT m.id AS menu_item_id, m.name,
               SUM(oi.quantity) AS quantity, SUM(oi.total_price) AS total
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        JOIN menu_items m ON m.id = oi.menu_item_id
        WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> 'cancelled'
        GROUP BY m.id, m.name
        ORDER BY quantity DESC, total DESC, m.name ASC
        LIMIT $3
    `
	rows := []dto.ItemSales{}
	if err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &rows, query, from, to, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PGRepository) CreateSalesReport(ctx context.Context, report *model.SalesReport) error {
	query := `
        INSERT INTO sales_reports (report_date, total_sales, total_orders, average_order_value,
                                   sales_by_category, sales_by_payment_method, top_selling_items)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, report, query,
		report.ReportDate, report.TotalSales, report.TotalOrders, report.AverageOrderValue,
		report.SalesByCategory, report.SalesByPaymentMethod, report.TopSellingItems)
	return postgres.MapError(err, "Sales report")
}

func (r *PGRepository) FindSalesReportByID(ctx context.Context, id int64) (*model.SalesReport, error) {
	var report model.SalesReport
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &report, `SELECT * FROM sales_reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *PGRepository) FindSalesReports(ctx context.Context, f *dto.ReportFilters) ([]model.SalesReport, int, error) {
	reports := []model.SalesReport{}
	count, err := r.list(ctx, "sales_reports", f, &reports)
	if err != nil {
		return nil, 0, err
	}
	return reports, count, nil
}

// PerformanceTotals covers the orders taken by userID. Preparation time is
// the minutes between an order being placed and its last update, counted
// only for orders that reached ready or served.
func (r *PGRepository) PerformanceTotals(ctx context.Context, userID int64, from, to time.Time) (*dto.PerformanceTotals, error) {
	query := `
        SELECT COUNT(*) FILTER (WHERE status <> 'cancelled') AS total_orders,
               COALESCE(SUM(total_amount) FILTER (WHERE status <> 'cancelled'), 0) AS total_sales,
               ROUND(COALESCE(AVG(EXTRACT(EPOCH FROM (updated_at - created_at)) / 60)
                     FILTER (WHERE status IN ('ready', 'served')), 0)::numeric, 2) AS average_preparation_time
        FROM orders
        WHERE waiter_id = $1 AND created_at >= $2 AND created_at < $3
    `
	var totals dto.PerformanceTotals
	if err := postgres.Conn(ctx, r.DB).GetContext(ctx, &totals, query, userID, from, to); err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *PGRepository) OrderStatusBreakdown(ctx context.Context, userID int64, from, to time.Time) ([]dto.StatusCount, error) {
	query := `
        SELECT status, COUNT(*) AS count
        FROM orders
        WHERE waiter_id = $1 AND created_at >= $2 AND created_at < $3
        GROUP BY status
    `
	rows := []dto.StatusCount{}
	if err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &rows, query, userID, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PGRepository) CreatePerformanceReport(ctx context.Context, report *model.PerformanceReport) error {
	query := `
        INSERT INTO performance_reports (user_id, report_date, total_orders, total_sales, average_order_value,
                                         average_preparation_time, order_status_breakdown)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, report, query,
		report.UserID, report.ReportDate, report.TotalOrders, report.TotalSales, report.AverageOrderValue,
		report.AveragePreparationTime, report.OrderStatusBreakdown)
	return postgres.MapError(err, "Performance report")
}

func (r *PGRepository) FindPerformanceReportByID(ctx context.Context, id int64) (*model.PerformanceReport, error) {
	var report model.PerformanceReport
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &report, `SELECT * FROM performance_reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *PGRepository) FindPerformanceReports(ctx context.Context, f *dto.ReportFilters) ([]model.PerformanceReport, int, error) {
	reports := []model.PerformanceReport{}
	count, err := r.list(ctx, "performance_reports", f, &reports)
	if err != nil {
		return nil, 0, err
	}
	return reports, count, nil
}

// list pages through one of the report tables, newest report date first.
func (r *PGRepository) list(ctx context.Context, tableName string, f *dto.ReportFilters, dest interface{}) (int, error) {
	q := postgres.Conn(ctx, r.DB)

	conditions := []string{}
	args := map[string]interface{}{}

	if f.From != nil {
		conditions = append(conditions, "report_date >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "report_date <= :to")
		args["to"] = *f.To
	}
	if f.UserID != nil {
		conditions = append(conditions, "user_id = :user_id")
		args["user_id"] = *f.UserID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM "+tableName+whereClause, args)
	if err != nil {
		return 0, err
	}
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(countQuery), countArgs...); err != nil {
		return 0, err
	}

	query := "SELECT * FROM " + tableName + whereClause + " ORDER BY report_date DESC, id DESC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return 0, err
	}
	if err := q.SelectContext(ctx, dest, q.Rebind(listQuery), listArgs...); err != nil {
		return 0, err
	}
	return count, nil
}
