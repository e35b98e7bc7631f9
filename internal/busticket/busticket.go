package busticket

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-layers/internal/busticket/application"
	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	"github.com/mateusmacedo/go-layers/internal/busticket/infrastructure"
	pkgApp "github.com/mateusmacedo/go-layers/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-layers/pkg/domain"
	watermillAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/watermill/adapter"
)

type BusTicketSlice struct {
	httpHandler *infrastructure.BusTicketHTTPHandler
	subscriber  message.Subscriber
	logger      pkgApp.AppLogger
}

func NewBusTicketSlice(
	publisher message.Publisher,
	subscriber message.Subscriber,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
	repository domain.BusTicketRepository,
) *BusTicketSlice {
	eventPublisher := watermillAdapter.NewEventPublisher[pkgDomain.Event[application.BusTicketBookedData], application.BusTicketBookedData](publisher, logger)

	httpHandler := infrastructure.NewBusTicketHTTPHandler(application.ReserveBusTicketDeps{
		Repository:  repository,
		Publisher:   eventPublisher,
		IDGenerator: idGenerator,
		Logger:      logger,
	}, logger)

	return &BusTicketSlice{
		httpHandler: httpHandler,
		subscriber:  subscriber,
		logger:      logger,
	}
}

// Start consome os eventos BusTicketBooked até o contexto ser cancelado.
func (s *BusTicketSlice) Start(ctx context.Context) error {
	return watermillAdapter.SubscribeEvents[application.BusTicketBookedData](
		ctx,
		s.subscriber,
		application.BusTicketBookedEventName,
		application.NewBusTicketBookedEventHandler(s.logger),
		s.logger,
	)
}

func (s *BusTicketSlice) RegisterRoutes(router chi.Router) {
	s.httpHandler.RegisterRoutes(router)
}
