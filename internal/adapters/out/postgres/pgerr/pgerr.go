// Package pgerr translates PostgreSQL errors raised through gorm into the core error taxonomy.
package pgerr

import (
	"errors"
	"fmt"

	"yard/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Translate maps unique violations to ConflictError, check violations to IntegrityError and
// missing rows to ObjectNotFoundError. Other errors are returned unchanged.
func Translate(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(entity, id)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return errs.NewConflictErrorWithCause(
			fmt.Sprintf("%s %s violates %s", entity, id, pgErr.ConstraintName), err)
	case pgerrcode.CheckViolation, pgerrcode.ForeignKeyViolation, pgerrcode.NotNullViolation:
		return errs.NewIntegrityErrorWithCause(
			fmt.Sprintf("%s %s violates %s", entity, id, pgErr.ConstraintName), err)
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.LockNotAvailable:
		return errs.NewConflictErrorWithCause(fmt.Sprintf("%s %s is locked by a concurrent request", entity, id), err)
	default:
		return err
	}
}

// IsUniqueViolation reports whether err comes from a unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
