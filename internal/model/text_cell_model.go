package model

type TextCell struct {
	Id         int64  `gorm:"primaryKey;autoIncrement"`
	NotebookId int64  `gorm:"not null;index"`
	Text       string `gorm:"type:text;not null"`
}

func (TextCell) TableName() string {
	return "cells"
}

// Models lists every table owned by this service, parents first.
func Models() []interface{} {
	return []interface{}{
		&Notebook{},
		&TextCell{},
	}
}
