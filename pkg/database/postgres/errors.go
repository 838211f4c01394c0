package postgres

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// IsSerializationFailure reports whether the transaction lost a race and can be retried.
func IsSerializationFailure(err error) bool {
	code := pgCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// MapError classifies constraint and concurrency failures for entity.
// Other errors are returned unchanged.
func MapError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return apperror.Conflict(fmt.Sprintf("%s already exists", entity))
	case IsForeignKeyViolation(err):
		return apperror.InvalidState("error.in_use",
			fmt.Sprintf("%s is still referenced and cannot be removed", entity),
			map[string]interface{}{"Entity": entity})
	case IsSerializationFailure(err):
		return apperror.Conflict(fmt.Sprintf("%s was modified concurrently, retry the request", entity))
	}
	return err
}
