package dto

import "time"

// TextCellDto and NotebookDto are the interchange shapes seen by clients.
type TextCellDto struct {
	Id   int64  `json:"id" validate:"gt=0"`
	Text string `json:"text"`
}

type NotebookDto struct {
	Id    int64         `json:"id" validate:"gt=0"`
	Name  string        `json:"name" validate:"required,max=255"`
	Cells []TextCellDto `json:"cells" validate:"dive"`
}

type OpenNotebookRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"max=72"`
}

type OpenNotebookResponse struct {
	Id        int64     `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UpdateCellTextRequest struct {
	Text string `json:"text"`
}

type DeleteCellResponse struct {
	Deleted bool `json:"deleted"`
}

type CellIdsResponse struct {
	Ids []int64 `json:"ids"`
}
