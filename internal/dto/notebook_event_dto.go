package dto

import "time"

// NotebookEventMessage travels over the internal event bus and out to
// websocket subscribers of the notebook.
type NotebookEventMessage struct {
	Type            string    `json:"type"`
	NotebookId      int64     `json:"notebook_id"`
	CellId          *int64    `json:"cell_id,omitempty"`
	OriginSessionId string    `json:"origin_session_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
