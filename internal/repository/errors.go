package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
	pgCheckViolation      = "23514"
)

// Constraint errors surfaced to services. Everything else is an opaque
// storage failure.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrValueOutOfRange     = errors.New("numeric value out of range")
	ErrCheckViolation      = errors.New("check constraint violation")
)

// translateError maps constraint violations to the sentinel errors above,
// keeping the constraint name for context.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", ErrUniqueViolation, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrForeignKeyViolation, pgErr.ConstraintName)
	case pgCheckViolation:
		return fmt.Errorf("%w: %s", ErrCheckViolation, pgErr.ConstraintName)
	case pgNumericOutOfRange:
		return fmt.Errorf("%w: %s", ErrValueOutOfRange, pgErr.Message)
	}
	return err
}
