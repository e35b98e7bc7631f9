package adapter

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"

	"github.com/mateusmacedo/go-layers/pkg/application"
	"github.com/mateusmacedo/go-layers/pkg/domain"
)

const (
	eventNameMetadataKey = "event_name"
	requestIDMetadataKey = "request_id"
)

// EventPublisher publica eventos de domínio como mensagens JSON, no tópico com o nome do evento.
type EventPublisher[E domain.Event[D], D any] struct {
	publisher message.Publisher
	logger    application.AppLogger
}

func NewEventPublisher[E domain.Event[D], D any](publisher message.Publisher, logger application.AppLogger) *EventPublisher[E, D] {
	return &EventPublisher[E, D]{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *EventPublisher[E, D]) Publish(ctx context.Context, event E) error {
	eventName := event.EventName()

	payload, err := application.MarshalPayload(event.Payload())
	if err != nil {
		application.LogError(ctx, p.logger, "error marshalling event payload", err, map[string]interface{}{
			"event_name": eventName,
		})
		return errors.Wrapf(err, "marshal %s payload", eventName)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(eventNameMetadataKey, eventName)
	if requestID, ok := application.RequestID(ctx); ok {
		msg.Metadata.Set(requestIDMetadataKey, requestID)
	}
	msg.SetContext(ctx)

	if err := p.publisher.Publish(eventName, msg); err != nil {
		application.LogError(ctx, p.logger, "error publishing event", err, map[string]interface{}{
			"event_name": eventName,
		})
		return errors.Wrapf(err, "publish %s", eventName)
	}

	application.LogInfo(ctx, p.logger, "event published", map[string]interface{}{
		"event_name": eventName,
		"message_id": msg.UUID,
	})
	return nil
}
