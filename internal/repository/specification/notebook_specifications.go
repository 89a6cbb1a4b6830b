package specification

import "gorm.io/gorm"

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// ByNotebookID restricts cells to one owning notebook.
type ByNotebookID struct {
	NotebookID int64
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}
