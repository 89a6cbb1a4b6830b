package unitofwork

import (
	"context"
	"testing"

	"note-to-self/internal/entity"
	"note-to-self/internal/repository/specification"
	"note-to-self/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWorkTransactions(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(testutil.NewTestDB(t))

	t.Run("rollback discards writes", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.NotebookRepository().Create(ctx, &entity.Notebook{Name: "draft"}))
		require.NoError(t, uow.Rollback())

		count, err := factory.NewUnitOfWork(ctx).NotebookRepository().Count(ctx, specification.ByName{Name: "draft"})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("commit keeps writes and deferred rollback is harmless", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.NotebookRepository().Create(ctx, &entity.Notebook{Name: "kept"}))
		require.NoError(t, uow.Commit())
		assert.ErrorIs(t, uow.Rollback(), ErrNoTransaction)

		count, err := factory.NewUnitOfWork(ctx).NotebookRepository().Count(ctx, specification.ByName{Name: "kept"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("double begin is refused", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()
		assert.ErrorIs(t, uow.Begin(ctx), ErrTxAlreadyStarted)
	})

	t.Run("commit without begin", func(t *testing.T) {
		assert.ErrorIs(t, factory.NewUnitOfWork(ctx).Commit(), ErrNoTransaction)
	})
}
