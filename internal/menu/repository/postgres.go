package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-restaurant-service/internal/menu/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, m *model.MenuItem) error {
	query := `
        INSERT INTO menu_items (category_id, name, description, price, is_available, image_url, variations)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, m, query,
		m.CategoryID, m.Name, m.Description, m.Price, m.IsAvailable, m.ImageURL, m.Variations)
	return postgres.MapError(err, "Menu item")
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	var item model.MenuItem
	query := `SELECT * FROM menu_items WHERE id = $1 LIMIT 1`
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.MenuItem, error) {
	items := []model.MenuItem{}
	if len(ids) == 0 {
		return items, nil
	}

	q := postgres.Conn(ctx, r.DB)
	query, args, err := sqlx.In(`SELECT * FROM menu_items WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	if err := q.SelectContext(ctx, &items, q.Rebind(query), args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MenuItemFilters) ([]model.MenuItem, int, error) {
	q := postgres.Conn(ctx, r.DB)

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CategoryID != nil {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = *f.CategoryID
	}
	if f.IsAvailable != nil {
		conditions = append(conditions, "is_available = :is_available")
		args["is_available"] = *f.IsAvailable
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM menu_items"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM menu_items" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	items := []model.MenuItem{}
	if err := q.SelectContext(ctx, &items, q.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *PGRepository) Update(ctx context.Context, m *model.MenuItem) error {
	query := `
        UPDATE menu_items
        SET category_id = :category_id,
            name = :name,
            description = :description,
            price = :price,
            is_available = :is_available,
            image_url = :image_url,
            variations = :variations,
            updated_at = NOW()
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, m)
	return postgres.MapError(err, "Menu item")
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return false, postgres.MapError(err, "Menu item")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
