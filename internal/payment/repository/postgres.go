package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/payment/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Payment) error {
	query := `
        INSERT INTO payments (order_id, processed_by, amount, payment_method, status, transaction_id, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, p, query,
		p.OrderID, p.ProcessedBy, p.Amount, p.PaymentMethod, p.Status, p.TransactionID, p.Notes)
	return postgres.MapError(err, "Payment")
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Payment, error) {
	return r.findOne(ctx, `SELECT * FROM payments WHERE id = $1`, id)
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Payment, error) {
	return r.findOne(ctx, `SELECT * FROM payments WHERE id = $1 FOR UPDATE`, id)
}

func (r *PGRepository) findOne(ctx context.Context, query string, id int64) (*model.Payment, error) {
	var p model.Payment
	if err := postgres.Conn(ctx, r.DB).GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.PaymentFilters) ([]model.Payment, int, error) {
	q := postgres.Conn(ctx, r.DB)

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != nil {
		conditions = append(conditions, "status = :status")
		args["status"] = *f.Status
	}
	if f.OrderID != nil {
		conditions = append(conditions, "order_id = :order_id")
		args["order_id"] = *f.OrderID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM payments"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM payments" + whereClause + " ORDER BY created_at DESC, id DESC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	payments := []model.Payment{}
	if err := q.SelectContext(ctx, &payments, q.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return payments, count, nil
}

// FindByTable returns the payments in the given status for every order placed on the table.
func (r *PGRepository) FindByTable(ctx context.Context, tableID int64, status model.PaymentStatus) ([]model.Payment, error) {
	query := `
        SELECT p.*
        FROM payments p
        JOIN orders o ON o.id = p.order_id
        WHERE o.table_id = $1 AND p.status = $2
        ORDER BY p.created_at ASC, p.id ASC
    `
	payments := []model.Payment{}
	if err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &payments, query, tableID, status); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Payment) error {
	query := `
        UPDATE payments
        SET amount = :amount,
            payment_method = :payment_method,
            status = :status,
            transaction_id = :transaction_id,
            notes = :notes,
            updated_at = NOW()
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, p)
	return postgres.MapError(err, "Payment")
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus) (*model.Payment, error) {
	var p model.Payment
	query := `UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING *`
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &p, query, status, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.MapError(err, "Payment")
	}
	return &p, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return false, postgres.MapError(err, "Payment")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
