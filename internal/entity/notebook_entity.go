package entity

// Notebook is the store-level record. PasswordHash never leaves the server;
// see mapper.NotebookDtoMapper for the client-visible shape.
type Notebook struct {
	Id           int64
	Name         string
	PasswordHash *string
	Cells        []TextCell
}

func (n *Notebook) HasPassword() bool {
	return n.PasswordHash != nil && *n.PasswordHash != ""
}

func (n *Notebook) CellIds() []int64 {
	ids := make([]int64, 0, len(n.Cells))
	for _, c := range n.Cells {
		ids = append(ids, c.Id)
	}
	return ids
}

func (n *Notebook) AddCell(cell TextCell) {
	cell.NotebookId = n.Id
	n.Cells = append(n.Cells, cell)
}

// SetCellText replaces the text of the cell with the given id.
// It reports false when the notebook holds no such cell.
func (n *Notebook) SetCellText(id int64, text string) bool {
	for i := range n.Cells {
		if n.Cells[i].Id == id {
			n.Cells[i].Text = text
			return true
		}
	}
	return false
}

// RemoveCell drops the cell from the in-memory snapshot; the next save
// deletes the row.
func (n *Notebook) RemoveCell(id int64) bool {
	for i := range n.Cells {
		if n.Cells[i].Id == id {
			n.Cells = append(n.Cells[:i], n.Cells[i+1:]...)
			return true
		}
	}
	return false
}
