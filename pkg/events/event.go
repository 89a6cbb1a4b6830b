package events

import (
	"strconv"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTEBOOK_SAVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	NotebookSaved = "NOTEBOOK_SAVED"
	CellAdded     = "CELL_ADDED"
	CellUpdated   = "CELL_UPDATED"
	CellDeleted   = "CELL_DELETED"
)

var _ Event = NotebookEvent{}

// NotebookEvent reports that the stored state of a notebook changed. Clients
// holding an older snapshot should reload before their next save.
type NotebookEvent struct {
	Type            string
	NotebookId      int64
	CellId          *int64
	OriginSessionId string
	OccurredAt      time.Time
}

func NewNotebookEvent(eventType string, notebookId int64, cellId *int64, originSessionId string) NotebookEvent {
	return NotebookEvent{
		Type:            eventType,
		NotebookId:      notebookId,
		CellId:          cellId,
		OriginSessionId: originSessionId,
		OccurredAt:      time.Now().UTC(),
	}
}

func (e NotebookEvent) EventType() string {
	return e.Type
}

func (e NotebookEvent) Payload() map[string]interface{} {
	data := map[string]interface{}{
		"notebook_id":       e.NotebookId,
		"origin_session_id": e.OriginSessionId,
	}
	if e.CellId != nil {
		data["cell_id"] = *e.CellId
	}
	return data
}

func (e NotebookEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Subject is the NATS subject the event is mirrored to.
func (e NotebookEvent) Subject() string {
	return "events." + e.Type + "." + strconv.FormatInt(e.NotebookId, 10)
}
