package unitofwork

import (
	"context"

	"note-to-self/internal/repository/contract"
)

// UnitOfWork hands out repositories bound either to the pool or, between
// Begin and Commit/Rollback, to a single transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NotebookRepository() contract.NotebookRepository
	TextCellRepository() contract.TextCellRepository
}
