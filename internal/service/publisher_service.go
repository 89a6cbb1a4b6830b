package service

import (
	"context"
	"encoding/json"

	"note-to-self/internal/dto"
	"note-to-self/internal/pkg/logger"
	"note-to-self/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.NotebookEvent) error
}

// EventMirror receives a copy of every published event for consumers outside
// this process. Implemented by pkg/nats.Publisher.
type EventMirror interface {
	Publish(ctx context.Context, event events.NotebookEvent) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	mirror    EventMirror
	logger    logger.ILogger
}

// NewPublisherService publishes on the in-process topic; mirror may be nil.
func NewPublisherService(topicName string, publisher message.Publisher, mirror EventMirror, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		mirror:    mirror,
		logger:    log,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.NotebookEvent) error {
	payload, err := json.Marshal(dto.NotebookEventMessage{
		Type:            event.Type,
		NotebookId:      event.NotebookId,
		CellId:          event.CellId,
		OriginSessionId: event.OriginSessionId,
		OccurredAt:      event.OccurredAt,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		return err
	}

	if p.mirror != nil {
		if err := p.mirror.Publish(ctx, event); err != nil {
			p.logger.Warn("PublisherService", "failed to mirror event", map[string]interface{}{
				"type":        event.Type,
				"notebook_id": event.NotebookId,
				"error":       err.Error(),
			})
		}
	}
	return nil
}
