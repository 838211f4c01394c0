package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/order/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (waiter_id, table_id, status, notes, total_amount)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, o, query, o.WaiterID, o.TableID, o.Status, o.Notes, o.TotalAmount)
	return postgres.MapError(err, "Order")
}

func (r *PGRepository) CreateItem(ctx context.Context, item *model.OrderItem) error {
	query := `
        INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, total_price, special_instructions)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, item, query,
		item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice, item.TotalPrice, item.SpecialInstructions)
	return postgres.MapError(err, "Order item")
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	q := postgres.Conn(ctx, r.DB)

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != nil {
		conditions = append(conditions, "status = :status")
		args["status"] = *f.Status
	}
	if f.TableID != nil {
		conditions = append(conditions, "table_id = :table_id")
		args["table_id"] = *f.TableID
	}
	if f.WaiterID != nil {
		conditions = append(conditions, "waiter_id = :waiter_id")
		args["waiter_id"] = *f.WaiterID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM orders"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC, id DESC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	orders := []model.Order{}
	if err := q.SelectContext(ctx, &orders, q.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *PGRepository) FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	if len(orderIDs) == 0 {
		return items, nil
	}

	q := postgres.Conn(ctx, r.DB)
	query, args, err := sqlx.In(`SELECT * FROM order_items WHERE order_id IN (?) ORDER BY id ASC`, orderIDs)
	if err != nil {
		return nil, err
	}
	if err := q.SelectContext(ctx, &items, q.Rebind(query), args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) Update(ctx context.Context, o *model.Order) error {
	query := `
        UPDATE orders
        SET status = :status,
            notes = :notes,
            updated_at = NOW()
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, o)
	return postgres.MapError(err, "Order")
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	var o model.Order
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING *`
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &o, query, status, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.MapError(err, "Order")
	}
	return &o, nil
}

func (r *PGRepository) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	_, err := postgres.Conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE orders SET total_amount = $1, updated_at = NOW() WHERE id = $2`, total, id)
	return postgres.MapError(err, "Order")
}

// Delete removes the order; its items go with it.
func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return false, postgres.MapError(err, "Order")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
