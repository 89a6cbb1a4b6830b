package model

type Notebook struct {
	Id           int64      `gorm:"primaryKey;autoIncrement"`
	Name         string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_notebooks_name"`
	PasswordHash *string    `gorm:"type:varchar(255)"`
	Cells        []TextCell `gorm:"foreignKey:NotebookId;constraint:OnDelete:CASCADE"`
}

func (Notebook) TableName() string {
	return "notebooks"
}
