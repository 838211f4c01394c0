package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-restaurant-service/internal/category/dto"
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

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (name, description, image_url, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, c, query, c.Name, c.Description, c.ImageURL, c.IsActive)
	return postgres.MapError(err, "Category")
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	categories := []model.Category{}
	if len(ids) == 0 {
		return categories, nil
	}

	q := postgres.Conn(ctx, r.DB)
	query, args, err := sqlx.In(`SELECT * FROM categories WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	if err := q.SelectContext(ctx, &categories, q.Rebind(query), args...); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	q := postgres.Conn(ctx, r.DB)

	conditions := []string{}
	args := map[string]interface{}{}

	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM categories"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM categories" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	categories := []model.Category{}
	if err := q.SelectContext(ctx, &categories, q.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return categories, count, nil
}

func (r *PGRepository) FindMenuItems(ctx context.Context, categoryID int64) ([]model.MenuItem, error) {
	items := []model.MenuItem{}
	query := `SELECT * FROM menu_items WHERE category_id = $1 ORDER BY name ASC`
	if err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &items, query, categoryID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            description = :description,
            image_url = :image_url,
            is_active = :is_active,
            updated_at = NOW()
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, c)
	return postgres.MapError(err, "Category")
}

// Delete fails with an in-use error while menu items still reference the category.
func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return false, postgres.MapError(err, "Category")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
