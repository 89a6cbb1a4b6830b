package entity

const NewCellPlaceholder = "New Text Box..."

type TextCell struct {
	Id         int64
	NotebookId int64
	Text       string
}
