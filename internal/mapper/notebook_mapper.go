package mapper

import (
	"note-to-self/internal/entity"
	"note-to-self/internal/model"
)

type NotebookMapper struct {
	cells *TextCellMapper
}

func NewNotebookMapper() *NotebookMapper {
	return &NotebookMapper{cells: NewTextCellMapper()}
}

func (m *NotebookMapper) ToEntity(n *model.Notebook) *entity.Notebook {
	if n == nil {
		return nil
	}
	e := &entity.Notebook{
		Id:           n.Id,
		Name:         n.Name,
		PasswordHash: n.PasswordHash,
	}
	if len(n.Cells) > 0 {
		e.Cells = m.cells.ToEntityValues(n.Cells)
	}
	return e
}

// ToModel never carries cells; they are persisted through the cell repository.
func (m *NotebookMapper) ToModel(n *entity.Notebook) *model.Notebook {
	if n == nil {
		return nil
	}
	return &model.Notebook{
		Id:           n.Id,
		Name:         n.Name,
		PasswordHash: n.PasswordHash,
	}
}
