package application

import (
	"context"

	pkgApp "github.com/mateusmacedo/go-layers/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-layers/pkg/domain"
)

type busTicketBookedEventHandler struct {
	logger pkgApp.AppLogger
}

func (h *busTicketBookedEventHandler) Handle(ctx context.Context, event pkgDomain.Event[BusTicketBookedData]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context canceled", ctx.Err(), nil)
		return ctx.Err()
	}

	data := event.Payload()
	pkgApp.LogInfo(ctx, h.logger, "bus ticket booked event received", map[string]interface{}{
		"event_name":     event.EventName(),
		"ticket_id":      data.TicketID,
		"passenger_name": data.PassengerName,
	})
	return nil
}

func NewBusTicketBookedEventHandler(logger pkgApp.AppLogger) pkgApp.EventHandler[pkgDomain.Event[BusTicketBookedData], BusTicketBookedData] {
	return &busTicketBookedEventHandler{
		logger: logger,
	}
}
