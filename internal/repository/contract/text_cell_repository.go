package contract

import (
	"context"

	"note-to-self/internal/entity"
	"note-to-self/internal/repository/specification"
)

// CellBatchSize bounds the rows or ids per statement; Postgres caps a
// statement at 65535 bind parameters.
const CellBatchSize = 1000

type TextCellRepository interface {
	Create(ctx context.Context, cell *entity.TextCell) error
	// UpsertAll writes every cell in batched statements, keyed by id,
	// setting text and re-parenting to notebookId.
	UpsertAll(ctx context.Context, notebookId int64, cells []entity.TextCell) error
	// SyncIDSequence keeps store-assigned ids above atLeast.
	SyncIDSequence(ctx context.Context, atLeast int64) error
	UpdateText(ctx context.Context, text string, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TextCell, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TextCell, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	PluckIDs(ctx context.Context, specs ...specification.Specification) ([]int64, error)
}
