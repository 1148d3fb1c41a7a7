// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"kiosk-assistant-be/internal/dto"
	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder ships an event off-process (NATS in production)
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarder  EventForwarder
	logger     logger.ILogger
}

// NewConsumerService drains turn events from the in-process bus. forwarder may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarder:  forwarder,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var turn dto.TurnEvent
	if err := json.Unmarshal(msg.Payload, &turn); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal turn event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // never retry garbage
		return
	}

	cs.logger.Info("EVENTS", "Conversation turn", map[string]interface{}{
		"conversation_id": turn.ConversationId,
		"action":          turn.Action,
	})

	if cs.forwarder != nil {
		event, err := events.FromJSON(events.TypeConversationTurn, msg.Payload, turn.At)
		if err == nil {
			err = cs.forwarder.Publish(ctx, event)
		}
		if err != nil {
			// the transcript is already saved; a lost audit event is not worth a redelivery loop
			cs.logger.Warn("EVENTS", "Failed to forward turn event", map[string]interface{}{
				"conversation_id": turn.ConversationId,
				"error":           err.Error(),
			})
		}
	}

	msg.Ack()
}
