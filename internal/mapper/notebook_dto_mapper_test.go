package mapper

import (
	"encoding/json"
	"testing"

	"note-to-self/internal/dto"
	"note-to-self/internal/entity"
	"note-to-self/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotebookDtoMapperHidesServerOnlyFields(t *testing.T) {
	hash := "$2a$10$secret"
	n := &entity.Notebook{
		Id:           7,
		Name:         "Journal",
		PasswordHash: &hash,
		Cells:        []entity.TextCell{{Id: 3, NotebookId: 7, Text: "dear diary"}},
	}

	out := NewNotebookDtoMapper().ToDto(n)
	raw, err := json.Marshal(out)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":7,"name":"Journal","cells":[{"id":3,"text":"dear diary"}]}`, string(raw))
	assert.NotContains(t, string(raw), "secret")
}

func TestNotebookDtoMapperEmptyCellsEncodeAsArray(t *testing.T) {
	out := NewNotebookDtoMapper().ToDto(&entity.Notebook{Id: 1, Name: "X"})
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"X","cells":[]}`, string(raw))
}

func TestNotebookDtoMapperToEntityParentsCells(t *testing.T) {
	in := &dto.NotebookDto{
		Id:    4,
		Name:  "Todo",
		Cells: []dto.TextCellDto{{Id: 11, Text: "a"}, {Id: 12, Text: "b"}},
	}

	n := NewNotebookDtoMapper().ToEntity(in)

	assert.Nil(t, n.PasswordHash)
	assert.Equal(t, []int64{11, 12}, n.CellIds())
	for _, c := range n.Cells {
		assert.Equal(t, int64(4), c.NotebookId)
	}
}

func TestTextCellMapperToModelsReparents(t *testing.T) {
	cells := []entity.TextCell{{Id: 1, NotebookId: 9, Text: "x"}}
	models := NewTextCellMapper().ToModels(2, cells)

	require.Len(t, models, 1)
	assert.Equal(t, model.TextCell{Id: 1, NotebookId: 2, Text: "x"}, *models[0])
	assert.Equal(t, int64(9), cells[0].NotebookId)
}

func TestNotebookMapperToModelOmitsCells(t *testing.T) {
	n := &entity.Notebook{Id: 1, Name: "A", Cells: []entity.TextCell{{Id: 5}}}
	m := NewNotebookMapper().ToModel(n)
	assert.Empty(t, m.Cells)
}

func TestNotebookMapperToEntityCopiesPreloadedCells(t *testing.T) {
	m := &model.Notebook{
		Id:    2,
		Name:  "Preloaded",
		Cells: []model.TextCell{{Id: 5, NotebookId: 2, Text: "a"}},
	}

	e := NewNotebookMapper().ToEntity(m)
	assert.Equal(t, []entity.TextCell{{Id: 5, NotebookId: 2, Text: "a"}}, e.Cells)
	assert.Nil(t, NewNotebookMapper().ToEntity(&model.Notebook{Id: 3}).Cells)
}
