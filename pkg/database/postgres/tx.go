package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Querier is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type txKey struct{}

// Conn returns the transaction bound to ctx, or db when there is none.
func Conn(ctx context.Context, db *sqlx.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// TxManager is what usecases depend on to group repository calls.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	WithinReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Transactor runs a unit of work inside one database transaction. Repositories
// pick the transaction up from the context through Conn.
type Transactor struct {
	DB *sqlx.DB
}

func NewTransactor(db *sqlx.DB) *Transactor {
	return &Transactor{DB: db}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead}, fn)
}

func (t *Transactor) WithinReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (t *Transactor) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Already inside a transaction: join it.
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.DB.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
