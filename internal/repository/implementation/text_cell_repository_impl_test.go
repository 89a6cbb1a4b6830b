package implementation

import (
	"context"
	"testing"

	"note-to-self/internal/entity"
	"note-to-self/internal/repository/specification"
	"note-to-self/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCellRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	notebooks := NewNotebookRepository(db)
	cells := NewTextCellRepository(db)

	a := &entity.Notebook{Name: "A"}
	b := &entity.Notebook{Name: "B"}
	require.NoError(t, notebooks.Create(ctx, a))
	require.NoError(t, notebooks.Create(ctx, b))

	create := func(notebookId int64, text string) *entity.TextCell {
		c := &entity.TextCell{NotebookId: notebookId, Text: text}
		require.NoError(t, cells.Create(ctx, c))
		require.NotZero(t, c.Id)
		return c
	}

	c1 := create(a.Id, "one")
	c2 := create(a.Id, "two")
	c3 := create(b.Id, "three")

	t.Run("find all ordered by id", func(t *testing.T) {
		found, err := cells.FindAll(ctx,
			specification.ByNotebookID{NotebookID: a.Id},
			specification.OrderBy{Field: "id"},
		)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, c1.Id, found[0].Id)
		assert.Equal(t, c2.Id, found[1].Id)
	})

	t.Run("upsert overwrites text and re-parents", func(t *testing.T) {
		err := cells.UpsertAll(ctx, a.Id, []entity.TextCell{
			{Id: c1.Id, Text: "uno"},
			{Id: c3.Id, Text: "tres"},
		})
		require.NoError(t, err)

		moved, err := cells.FindOne(ctx, specification.ByID{ID: c3.Id})
		require.NoError(t, err)
		assert.Equal(t, a.Id, moved.NotebookId)
		assert.Equal(t, "tres", moved.Text)

		count, err := cells.Count(ctx, specification.ByNotebookID{NotebookID: b.Id})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("upsert of nothing is a no-op", func(t *testing.T) {
		assert.NoError(t, cells.UpsertAll(ctx, a.Id, nil))
	})

	t.Run("update text scoped to owner", func(t *testing.T) {
		n, err := cells.UpdateText(ctx, "hijacked",
			specification.ByID{ID: c2.Id},
			specification.ByNotebookID{NotebookID: b.Id},
		)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = cells.UpdateText(ctx, "dos",
			specification.ByID{ID: c2.Id},
			specification.ByNotebookID{NotebookID: a.Id},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("pluck ids", func(t *testing.T) {
		ids, err := cells.PluckIDs(ctx,
			specification.ByNotebookID{NotebookID: a.Id},
			specification.OrderBy{Field: "id"},
		)
		require.NoError(t, err)
		assert.Equal(t, []int64{c1.Id, c2.Id, c3.Id}, ids)
	})

	t.Run("sequence sync is a no-op outside postgres", func(t *testing.T) {
		assert.NoError(t, cells.SyncIDSequence(ctx, 1_000_000))
	})

	t.Run("empty id set deletes nothing", func(t *testing.T) {
		n, err := cells.Delete(ctx, specification.ByNotebookID{NotebookID: a.Id}, specification.ByIDs{})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("delete an id set", func(t *testing.T) {
		n, err := cells.Delete(ctx,
			specification.ByNotebookID{NotebookID: a.Id},
			specification.ByIDs{IDs: []int64{c2.Id, c3.Id}},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		left, err := cells.FindAll(ctx, specification.ByNotebookID{NotebookID: a.Id})
		require.NoError(t, err)
		require.Len(t, left, 1)
		assert.Equal(t, "uno", left[0].Text)
	})

	t.Run("delete twice reports zero rows", func(t *testing.T) {
		n, err := cells.Delete(ctx, specification.ByID{ID: c1.Id})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = cells.Delete(ctx, specification.ByID{ID: c1.Id})
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
