package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTransactor(t *testing.T) (*Transactor, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTransactor(sqlx.NewDb(db, "pgx")), mock
}

func TestWithinTransactionCommits(t *testing.T) {
	tr, mock := newMockTransactor(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE dining_tables").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tr.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, ok := Conn(ctx, tr.DB).(*sqlx.Tx)
		assert.True(t, ok)
		_, err := Conn(ctx, tr.DB).ExecContext(ctx, "UPDATE dining_tables SET status = 'available'")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	tr, mock := newMockTransactor(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := tr.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNestedTransactionJoinsOuter(t *testing.T) {
	tr, mock := newMockTransactor(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tr.WithinTransaction(context.Background(), func(outer context.Context) error {
		return tr.WithinReadOnlyTransaction(outer, func(inner context.Context) error {
			assert.Same(t, Conn(outer, tr.DB), Conn(inner, tr.DB))
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnWithoutTransaction(t *testing.T) {
	tr, _ := newMockTransactor(t)
	assert.Same(t, tr.DB, Conn(context.Background(), tr.DB))
}
