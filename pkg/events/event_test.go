package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotebookEventPayload(t *testing.T) {
	cellId := int64(10)
	evt := NewNotebookEvent(CellAdded, 1, &cellId, "s-1")

	assert.Equal(t, CellAdded, evt.EventType())
	assert.Equal(t, "events.CELL_ADDED.1", evt.Subject())
	assert.False(t, evt.Timestamp().IsZero())

	payload := evt.Payload()
	assert.Equal(t, int64(1), payload["notebook_id"])
	assert.Equal(t, int64(10), payload["cell_id"])
	assert.Equal(t, "s-1", payload["origin_session_id"])
}

func TestNotebookEventPayloadWithoutCell(t *testing.T) {
	evt := NewNotebookEvent(NotebookSaved, 4, nil, "")

	_, hasCell := evt.Payload()["cell_id"]
	assert.False(t, hasCell)
}

func TestNotebookEventSatisfiesEvent(t *testing.T) {
	var evt Event = NewNotebookEvent(CellDeleted, 2, nil, "s-2")

	assert.Equal(t, CellDeleted, evt.EventType())
	assert.Equal(t, int64(2), evt.Payload()["notebook_id"])
}
