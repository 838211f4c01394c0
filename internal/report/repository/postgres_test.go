package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestSalesTotalsSkipsCancelledOrders(t *testing.T) {
	repo, mock := newMock(t)
	from := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(regexp.QuoteMeta(`status <> 'cancelled'`)).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"total_sales", "total_orders"}).AddRow("195.00", 1))

	got, err := repo.SalesTotals(context.Background(), from, to)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("195").Equal(got.TotalSales))
	assert.Equal(t, 1, got.TotalOrders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSalesReportDuplicateDay(t *testing.T) {
	repo, mock := newMock(t)
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO sales_reports`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.CreateSalesReport(context.Background(), &model.SalesReport{
		ReportDate:           day,
		SalesByCategory:      types.JSONText(`[]`),
		SalesByPaymentMethod: types.JSONText(`[]`),
		TopSellingItems:      types.JSONText(`[]`),
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "Sales report already exists", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
