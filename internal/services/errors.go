package services

import (
	"errors"
	"fmt"

	"github.com/stwalsh4118/room4rent/internal/billing"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

// Service-level error kinds. Every failure a service returns either wraps
// one of these or is an unexpected storage/runtime failure.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("invalid credentials")
)

// invalid wraps a billing validation error as an invalid-argument failure.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}

// notFound builds a not-found failure naming the missing resource.
func notFound(resource string, id int64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, resource, id)
}

// isValidationError reports whether err is one of the billing rule
// violations callers should see as invalid input.
func isValidationError(err error) bool {
	return errors.Is(err, billing.ErrInvalidPeriod) ||
		errors.Is(err, billing.ErrReadingDecreased) ||
		errors.Is(err, billing.ErrRateRequired) ||
		errors.Is(err, billing.ErrNegativeMeterValue) ||
		errors.Is(err, billing.ErrValueTooLarge) ||
		errors.Is(err, repository.ErrValueOutOfRange) ||
		errors.Is(err, repository.ErrCheckViolation)
}

// isUniqueViolation reports whether err is a repository unique violation.
func isUniqueViolation(err error) bool {
	return errors.Is(err, repository.ErrUniqueViolation)
}
