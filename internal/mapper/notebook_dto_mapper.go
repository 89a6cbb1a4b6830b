package mapper

import (
	"note-to-self/internal/dto"
	"note-to-self/internal/entity"
)

// NotebookDtoMapper converts between the wire shape and the store record.
// Server-only fields (PasswordHash, cell ownership) are dropped on the way
// out and never read on the way in.
type NotebookDtoMapper struct{}

func NewNotebookDtoMapper() *NotebookDtoMapper {
	return &NotebookDtoMapper{}
}

func (m *NotebookDtoMapper) ToDto(n *entity.Notebook) *dto.NotebookDto {
	if n == nil {
		return nil
	}
	cells := make([]dto.TextCellDto, len(n.Cells))
	for i, c := range n.Cells {
		cells[i] = m.CellToDto(&c)
	}
	return &dto.NotebookDto{
		Id:    n.Id,
		Name:  n.Name,
		Cells: cells,
	}
}

func (m *NotebookDtoMapper) ToEntity(d *dto.NotebookDto) *entity.Notebook {
	if d == nil {
		return nil
	}
	n := &entity.Notebook{
		Id:    d.Id,
		Name:  d.Name,
		Cells: make([]entity.TextCell, 0, len(d.Cells)),
	}
	for _, c := range d.Cells {
		n.AddCell(entity.TextCell{Id: c.Id, Text: c.Text})
	}
	return n
}

func (m *NotebookDtoMapper) CellToDto(c *entity.TextCell) dto.TextCellDto {
	return dto.TextCellDto{Id: c.Id, Text: c.Text}
}
