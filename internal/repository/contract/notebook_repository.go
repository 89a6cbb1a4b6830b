package contract

import (
	"context"

	"note-to-self/internal/entity"
	"note-to-self/internal/repository/specification"
)

type NotebookRepository interface {
	Create(ctx context.Context, notebook *entity.Notebook) error
	// Upsert inserts the notebook by id or overwrites its name. Cells and the
	// password hash are left alone.
	Upsert(ctx context.Context, notebook *entity.Notebook) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notebook, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
