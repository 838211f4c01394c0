package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/table/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tableColumns = []string{"id", "table_number", "capacity", "status", "location", "created_at", "updated_at"}

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestFindByIDMissing(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM dining_tables WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(tableColumns))

	got, err := repo.FindByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDForUpdateLocksRow(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM dining_tables WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(3, 3, 4, "occupied", "patio", now, now))

	got, err := repo.FindByIDForUpdate(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.TableOccupied, got.Status)
	assert.Equal(t, "patio", *got.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllFiltersByStatus(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM dining_tables WHERE status = $1`)).
		WithArgs("available").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM dining_tables WHERE status = $1 ORDER BY table_number ASC LIMIT 10 OFFSET 10`)).
		WithArgs("available").
		WillReturnRows(sqlmock.NewRows(tableColumns).AddRow(1, 1, 2, "available", nil, now, now))

	status := model.TableAvailable
	tables, count, err := repo.FindAll(context.Background(), &dto.TableFilters{Status: &status, Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, tables, 1)
	assert.Nil(t, tables[0].Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusSerializationFailure(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE dining_tables SET status = $1`)).
		WithArgs("occupied", int64(3)).
		WillReturnError(&pgconn.PgError{Code: "40001"})

	_, err := repo.UpdateStatus(context.Background(), 3, model.TableOccupied)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestDeleteReportsMissingRow(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM dining_tables WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCreateDuplicateNumber(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO dining_tables`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &model.Table{TableNumber: 1, Capacity: 2, Status: model.TableAvailable})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}
