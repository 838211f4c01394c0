package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/user/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (email, password_hash, first_name, last_name, role, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING *
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, u, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsActive)
	return postgres.MapError(err, "User")
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var u model.User
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &u, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.UserFilters) ([]model.User, int, error) {
	q := postgres.Conn(ctx, r.DB)

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Role != nil {
		conditions = append(conditions, "role = :role")
		args["role"] = *f.Role
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM users"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM users" + whereClause + " ORDER BY id ASC"
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	users := []model.User{}
	if err := q.SelectContext(ctx, &users, q.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *PGRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET email = :email,
            password_hash = :password_hash,
            first_name = :first_name,
            last_name = :last_name,
            role = :role,
            is_active = :is_active,
            updated_at = NOW()
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, u)
	return postgres.MapError(err, "User")
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := postgres.Conn(ctx, r.DB).ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, postgres.MapError(err, "User")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
