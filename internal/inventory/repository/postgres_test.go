package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-restaurant-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inventoryColumns = []string{
	"id", "name", "description", "current_stock", "minimum_stock", "unit_price",
	"unit", "supplier", "is_active", "created_at", "updated_at",
}

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestAdjustStockAddsDeltaInPlace(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE inventory_items SET current_stock = current_stock + $1, updated_at = NOW() WHERE id = $2 RETURNING *`)).
		WithArgs("-5", int64(3)).
		WillReturnRows(sqlmock.NewRows(inventoryColumns).
			AddRow(3, "Flour", nil, "-2.00", "10.00", "1.20", "kg", nil, true, now, now))

	got, err := repo.AdjustStock(context.Background(), 3, decimal.RequireFromString("-5"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("-2").Equal(got.CurrentStock), got.CurrentStock.String())
	assert.True(t, got.IsLowStock())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStockMissingItem(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE inventory_items SET current_stock = current_stock + $1`)).
		WithArgs("4", int64(99)).
		WillReturnRows(sqlmock.NewRows(inventoryColumns))

	got, err := repo.AdjustStock(context.Background(), 99, decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllLowStock(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM inventory_items WHERE current_stock <= minimum_stock AND is_active = TRUE`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM inventory_items WHERE current_stock <= minimum_stock AND is_active = TRUE ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows(inventoryColumns).
			AddRow(1, "Eggs", nil, "3", "12", "0.20", "pcs", "Farm Co", true, now, now))

	items, count, err := repo.FindAll(context.Background(), &dto.InventoryFilters{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, items, 1)
	assert.Equal(t, "Farm Co", *items[0].Supplier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindIngredientsByMenuItem(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM ingredients WHERE menu_item_id = $1 ORDER BY id ASC`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "menu_item_id", "inventory_item_id", "quantity", "unit", "created_at", "updated_at"}).
			AddRow(1, 7, 3, "0.25", "kg", now, now))

	got, err := repo.FindIngredientsByMenuItem(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].InventoryItemID)
	assert.True(t, decimal.RequireFromString("0.25").Equal(got[0].Quantity))
}

func TestDeleteIngredientMissing(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM ingredients WHERE id = $1`)).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteIngredient(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCreateDuplicateName(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO inventory_items`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &model.InventoryItem{Name: "Flour", IsActive: true})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "Inventory item already exists", err.Error())
}
