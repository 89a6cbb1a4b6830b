package service

import (
	"context"
	"encoding/json"

	"note-to-self/internal/dto"
	"note-to-self/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

// NotebookDelivery pushes an encoded event to every live subscriber of a
// notebook. Implemented by the websocket hub.
type NotebookDelivery interface {
	Send(notebookId int64, payload []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	delivery   NotebookDelivery
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery NotebookDelivery,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		delivery:   delivery,
		logger:     log,
	}
}

// Consume subscribes to the change topic and forwards messages until ctx is
// cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	// Ack even undecodable messages so they are not redelivered forever.
	defer msg.Ack()

	var payload dto.NotebookEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.logger.Debug("ConsumerService", "delivering notebook event", map[string]interface{}{
		"type":        payload.Type,
		"notebook_id": payload.NotebookId,
	})
	cs.delivery.Send(payload.NotebookId, msg.Payload)
}
