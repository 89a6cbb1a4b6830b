package service

import (
	"context"
	"errors"
	"fmt"

	"note-to-self/internal/pkg/serverutils"
	"note-to-self/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
)

// translateStoreError folds repository and driver errors into the service
// taxonomy. Errors that already carry a sentinel pass through untouched.
func translateStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, serverutils.ErrNotFound),
		errors.Is(err, serverutils.ErrAlreadyExists),
		errors.Is(err, serverutils.ErrForbidden),
		errors.Is(err, serverutils.ErrUnauthorized),
		errors.Is(err, serverutils.ErrBadRequest),
		errors.Is(err, serverutils.ErrStore),
		errors.Is(err, serverutils.ErrStoreUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err):
		return fmt.Errorf("%w: %w", serverutils.ErrStoreUnavailable, err)
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: %w", serverutils.ErrAlreadyExists, err)
	default:
		return fmt.Errorf("%w: %w", serverutils.ErrStore, err)
	}
}

// translateInsertError is for inserts whose key the store assigns. A unique
// violation there is a store fault, never a name conflict.
func translateInsertError(err error) error {
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", serverutils.ErrStore, err)
	}
	return translateStoreError(err)
}
