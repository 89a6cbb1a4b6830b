package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"note-to-self/internal/dto"
	"note-to-self/internal/pkg/logger"
	"note-to-self/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedDelivery struct {
	notebookId int64
	payload    []byte
}

type recordingDelivery struct {
	mu   sync.Mutex
	sent []capturedDelivery
}

func (d *recordingDelivery) Send(notebookId int64, payload []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, capturedDelivery{notebookId: notebookId, payload: payload})
}

func (d *recordingDelivery) all() []capturedDelivery {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]capturedDelivery(nil), d.sent...)
}

type failingMirror struct {
	calls int
}

func (m *failingMirror) Publish(ctx context.Context, event events.NotebookEvent) error {
	m.calls++
	return errors.New("nats unavailable")
}

func newPubSub(t *testing.T) *gochannel.GoChannel {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })
	return pubSub
}

func TestPublisherToConsumerDelivery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := newPubSub(t)
	delivery := &recordingDelivery{}

	consumer := NewConsumerService(pubSub, "NOTEBOOK_CHANGED", delivery, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	mirror := &failingMirror{}
	publisher := NewPublisherService("NOTEBOOK_CHANGED", pubSub, mirror, logger.NewNopLogger())

	cellId := int64(10)
	require.NoError(t, publisher.Publish(ctx, events.NewNotebookEvent(events.CellAdded, 1, &cellId, "s-1")))

	require.Eventually(t, func() bool { return len(delivery.all()) == 1 }, time.Second, 10*time.Millisecond)

	got := delivery.all()[0]
	assert.Equal(t, int64(1), got.notebookId)

	var msg dto.NotebookEventMessage
	require.NoError(t, json.Unmarshal(got.payload, &msg))
	assert.Equal(t, events.CellAdded, msg.Type)
	require.NotNil(t, msg.CellId)
	assert.Equal(t, int64(10), *msg.CellId)
	assert.Equal(t, "s-1", msg.OriginSessionId)

	// a failing mirror never fails the in-process publish
	assert.Equal(t, 1, mirror.calls)
}

func TestConsumerSkipsUndecodableMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := newPubSub(t)
	delivery := &recordingDelivery{}

	consumer := NewConsumerService(pubSub, "NOTEBOOK_CHANGED", delivery, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, pubSub.Publish("NOTEBOOK_CHANGED", message.NewMessage(watermill.NewUUID(), []byte("{"))))

	publisher := NewPublisherService("NOTEBOOK_CHANGED", pubSub, nil, logger.NewNopLogger())
	require.NoError(t, publisher.Publish(ctx, events.NewNotebookEvent(events.NotebookSaved, 2, nil, "")))

	require.Eventually(t, func() bool { return len(delivery.all()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(2), delivery.all()[0].notebookId)
}
