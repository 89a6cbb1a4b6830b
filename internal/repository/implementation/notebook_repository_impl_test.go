package implementation

import (
	"context"
	"testing"

	"note-to-self/internal/entity"
	"note-to-self/internal/repository/specification"
	"note-to-self/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotebookRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewNotebookRepository(testutil.NewTestDB(t))

	hash := "hashed"
	nb := &entity.Notebook{Name: "Groceries", PasswordHash: &hash}
	require.NoError(t, repo.Create(ctx, nb))
	require.NotZero(t, nb.Id)

	t.Run("find by name", func(t *testing.T) {
		found, err := repo.FindOne(ctx, specification.ByName{Name: "Groceries"})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, nb.Id, found.Id)
		require.NotNil(t, found.PasswordHash)
		assert.Equal(t, "hashed", *found.PasswordHash)
	})

	t.Run("missing returns nil without error", func(t *testing.T) {
		found, err := repo.FindOne(ctx, specification.ByName{Name: "Nope"})
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		err := repo.Create(ctx, &entity.Notebook{Name: "Groceries"})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

		count, err := repo.Count(ctx, specification.ByName{Name: "Groceries"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("upsert renames and keeps password", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &entity.Notebook{Id: nb.Id, Name: "Shopping"}))

		found, err := repo.FindOne(ctx, specification.ByID{ID: nb.Id})
		require.NoError(t, err)
		assert.Equal(t, "Shopping", found.Name)
		require.NotNil(t, found.PasswordHash)
		assert.Equal(t, "hashed", *found.PasswordHash)
	})

	t.Run("upsert inserts an unknown id", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &entity.Notebook{Id: 500, Name: "Imported"}))

		found, err := repo.FindOne(ctx, specification.ByID{ID: 500})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Imported", found.Name)
	})
}
