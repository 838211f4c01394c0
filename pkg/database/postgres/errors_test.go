package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
	}

	assert.NoError(t, MapError(nil, "Table"))
	assert.True(t, apperror.Is(MapError(wrap("23505"), "Table"), apperror.KindConflict))
	assert.True(t, apperror.Is(MapError(wrap("23503"), "Category"), apperror.KindInvalidState))
	assert.True(t, apperror.Is(MapError(wrap("40001"), "Order"), apperror.KindConflict))
	assert.True(t, apperror.Is(MapError(wrap("40P01"), "Order"), apperror.KindConflict))

	plain := errors.New("connection refused")
	assert.Equal(t, plain, MapError(plain, "Table"))
}
