package adapter

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"

	"github.com/mateusmacedo/go-layers/pkg/application"
	"github.com/mateusmacedo/go-layers/pkg/domain"
)

// SubscribeEvents consome o tópico do evento e entrega cada mensagem ao handler
// até o contexto ser cancelado. Payloads inválidos são descartados; erros do
// handler devolvem a mensagem com Nack.
func SubscribeEvents[D any](
	ctx context.Context,
	subscriber message.Subscriber,
	eventName string,
	handler application.EventHandler[domain.Event[D], D],
	logger application.AppLogger,
) error {
	messages, err := subscriber.Subscribe(ctx, eventName)
	if err != nil {
		application.LogError(ctx, logger, "error subscribing to event", err, map[string]interface{}{
			"event_name": eventName,
		})
		return errors.Wrapf(err, "subscribe %s", eventName)
	}

	go func() {
		for msg := range messages {
			handleMessage(ctx, msg, eventName, handler, logger)
		}
	}()
	return nil
}

func handleMessage[D any](
	ctx context.Context,
	msg *message.Message,
	eventName string,
	handler application.EventHandler[domain.Event[D], D],
	logger application.AppLogger,
) {
	if requestID := msg.Metadata.Get(requestIDMetadataKey); requestID != "" {
		ctx = application.WithRequestID(ctx, requestID)
	}
	fields := map[string]interface{}{
		"event_name": eventName,
		"message_id": msg.UUID,
	}

	var payload D
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		application.LogError(ctx, logger, "error unmarshalling event payload", err, fields)
		msg.Ack()
		return
	}

	if err := handler.Handle(ctx, domain.StaticEvent[D]{Name: eventName, Data: payload}); err != nil {
		application.LogError(ctx, logger, "error handling event", err, fields)
		msg.Nack()
		return
	}

	application.LogInfo(ctx, logger, "event handled", fields)
	msg.Ack()
}
