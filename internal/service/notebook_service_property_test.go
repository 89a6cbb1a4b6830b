package service

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"note-to-self/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func cellTextGenerator() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.StringMatching(`[A-Za-z0-9 .,!?]{1,80}`),
	)
}

// snapshotGenerator draws a cell set whose ids live in a range owned by one
// iteration, so iterations sharing a database never re-parent each other's cells.
func snapshotGenerator(base int64) *rapid.Generator[[]dto.TextCellDto] {
	return rapid.Custom(func(t *rapid.T) []dto.TextCellDto {
		ids := rapid.SliceOfDistinct(rapid.Int64Range(base+1, base+500), rapid.ID[int64]).Draw(t, "ids")
		cells := make([]dto.TextCellDto, 0, len(ids))
		for i, id := range ids {
			cells = append(cells, dto.TextCellDto{
				Id:   id,
				Text: cellTextGenerator().Draw(t, fmt.Sprintf("text%d", i)),
			})
		}
		return cells
	})
}

func sortedCells(cells []dto.TextCellDto) []dto.TextCellDto {
	out := append([]dto.TextCellDto(nil), cells...)
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out
}

func TestSaveLoadRoundTripProperty(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	var iteration int64

	rapid.Check(t, func(rt *rapid.T) {
		iteration++
		name := fmt.Sprintf("roundtrip-%d", iteration)
		id, err := f.svc.Create(ctx, &dto.OpenNotebookRequest{Name: name})
		require.NoError(rt, err)
		grant := grantFor(id)

		// an earlier state the save has to reconcile away from
		before := snapshotGenerator(iteration * 1000).Draw(rt, "before")
		require.NoError(rt, f.svc.Save(ctx, grant, &dto.NotebookDto{Id: id, Name: name, Cells: before}))

		after := snapshotGenerator(iteration * 1000).Draw(rt, "after")
		require.NoError(rt, f.svc.Save(ctx, grant, &dto.NotebookDto{Id: id, Name: name, Cells: after}))

		loaded, err := f.svc.Load(ctx, grant, id)
		require.NoError(rt, err)
		assert.Equal(rt, name, loaded.Name)
		assert.Equal(rt, sortedCells(after), sortedCells(loaded.Cells))
	})
}

func TestSaveIdempotenceProperty(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	var iteration int64

	rapid.Check(t, func(rt *rapid.T) {
		iteration++
		name := fmt.Sprintf("idempotent-%d", iteration)
		id, err := f.svc.Create(ctx, &dto.OpenNotebookRequest{Name: name})
		require.NoError(rt, err)
		grant := grantFor(id)

		snapshot := &dto.NotebookDto{Id: id, Name: name, Cells: snapshotGenerator(iteration * 1000).Draw(rt, "cells")}

		require.NoError(rt, f.svc.Save(ctx, grant, snapshot))
		once, err := f.svc.Load(ctx, grant, id)
		require.NoError(rt, err)

		require.NoError(rt, f.svc.Save(ctx, grant, snapshot))
		twice, err := f.svc.Load(ctx, grant, id)
		require.NoError(rt, err)

		assert.Equal(rt, once.Name, twice.Name)
		assert.Equal(rt, sortedCells(once.Cells), sortedCells(twice.Cells))
	})
}
