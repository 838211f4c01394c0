package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/table/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, t *model.Table) error {
	query := `
        INSERT INTO dining_tables (table_number, capacity, status, location)
        VALUES ($1, $2, $3, $4)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, t, query, t.TableNumber, t.Capacity, t.Status, t.Location)
	return postgres.MapError(err, "Table")
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Table, error) {
	return r.findOne(ctx, `SELECT * FROM dining_tables WHERE id = $1`, id)
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (r *PGRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.Table, error) {
	return r.findOne(ctx, `SELECT * FROM dining_tables WHERE id = $1 FOR UPDATE`, id)
}

func (r *PGRepository) findOne(ctx context.Context, query string, id int64) (*model.Table, error) {
	var t model.Table
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.TableFilters) ([]model.Table, int, error) {
	q := postgres.Conn(ctx, r.DB)

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != nil {
		conditions = append(conditions, "status = :status")
		args["status"] = *f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM dining_tables"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM dining_tables" + whereClause + " ORDER BY table_number ASC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	tables := []model.Table{}
	if err := q.SelectContext(ctx, &tables, q.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return tables, count, nil
}

func (r *PGRepository) Update(ctx context.Context, t *model.Table) error {
	query := `
        UPDATE dining_tables
        SET table_number = :table_number,
            capacity = :capacity,
            status = :status,
            location = :location,
            updated_at = NOW()
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, t)
	return postgres.MapError(err, "Table")
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id int64, status model.TableStatus) (*model.Table, error) {
	var t model.Table
	query := `UPDATE dining_tables SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING *`
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &t, query, status, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.MapError(err, "Table")
	}
	return &t, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, "DELETE FROM dining_tables WHERE id = $1", id)
	if err != nil {
		return false, postgres.MapError(err, "Table")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
