package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-restaurant-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
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

func (r *PGRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
        INSERT INTO inventory_items (name, description, current_stock, minimum_stock, unit_price, unit, supplier, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, item, query,
		item.Name, item.Description, item.CurrentStock, item.MinimumStock, item.UnitPrice, item.Unit, item.Supplier, item.IsActive)
	return postgres.MapError(err, "Inventory item")
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &item, `SELECT * FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.InventoryItem, int, error) {
	q := postgres.Conn(ctx, r.DB)

	conditions := []string{}
	args := map[string]interface{}{}

	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.LowStock {
		conditions = append(conditions, "current_stock <= minimum_stock", "is_active = TRUE")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM inventory_items"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM inventory_items" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	items := []model.InventoryItem{}
	if err := q.SelectContext(ctx, &items, q.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *PGRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	query := `
        UPDATE inventory_items
        SET name = :name,
            description = :description,
            current_stock = :current_stock,
            minimum_stock = :minimum_stock,
            unit_price = :unit_price,
            unit = :unit,
            supplier = :supplier,
            is_active = :is_active,
            updated_at = NOW()
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, item)
	return postgres.MapError(err, "Inventory item")
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, "inventory_items", "Inventory item", id)
}

// AdjustStock applies delta without a floor: stock may go negative.
func (r *PGRepository) AdjustStock(ctx context.Context, id int64, delta decimal.Decimal) (*model.InventoryItem, error) {
	var item model.InventoryItem
	query := `
        UPDATE inventory_items
        SET current_stock = current_stock + $1,
            updated_at = NOW()
        WHERE id = $2
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &item, query, delta, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.MapError(err, "Inventory item")
	}
	return &item, nil
}

func (r *PGRepository) CreateIngredient(ctx context.Context, ing *model.Ingredient) error {
	query := `
        INSERT INTO ingredients (menu_item_id, inventory_item_id, quantity, unit)
        VALUES ($1, $2, $3, $4)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, ing, query, ing.MenuItemID, ing.InventoryItemID, ing.Quantity, ing.Unit)
	return postgres.MapError(err, "Ingredient")
}

func (r *PGRepository) FindIngredientsByMenuItem(ctx context.Context, menuItemID int64) ([]model.Ingredient, error) {
	ingredients := []model.Ingredient{}
	query := `SELECT * FROM ingredients WHERE menu_item_id = $1 ORDER BY id ASC`
	if err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &ingredients, query, menuItemID); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *PGRepository) DeleteIngredient(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, "ingredients", "Ingredient", id)
}

func (r *PGRepository) deleteByID(ctx context.Context, table, entity string, id int64) (bool, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return false, postgres.MapError(err, entity)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
