package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-layers/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-layers/pkg/domain"
	"github.com/mateusmacedo/go-layers/pkg/layer"
)

const (
	ReservationFailedCallback = "reservation_failed"
	TicketReservedCallback    = "ticket_reserved"

	MaxSeatNumber = 60
)

var ErrInvalidReservation = errors.New("invalid reservation")

var seatClasses = []string{"standard", "executive", "sleeper"}

var reserveBusTicketDefinition = layer.Define("ReserveBusTicket",
	layer.Required("passenger_name", "departure_time", "seat_number", "origin", "destination"),
	layer.Optional("notes"),
	layer.OptionalWithDefault(map[string]any{"seat_class": "standard"}),
	layer.DefaultCallbacks(ReservationFailedCallback, TicketReservedCallback),
	layer.Observer(
		layer.Callable(newOutcomeCounter(reservationsTotal, "reserved")),
		layer.Method("publish_booked"),
		layer.Method("log_reservation"),
	),
	layer.ObserverOf(layer.EventFailure,
		layer.Callable(newOutcomeCounter(reservationsTotal, "rejected")),
		layer.Method("log_rejection"),
	),
	layer.ObserverExceptionHandler("observer_failed"),
	layer.Validates(validPassengerName, validSeatNumber, validRoute, validSeatClass),
)

type ReserveBusTicketDeps struct {
	Repository  domain.BusTicketRepository
	Publisher   EventPublisher
	IDGenerator pkgDomain.IDGenerator[string]
	Logger      pkgApp.AppLogger
}

// ReserveBusTicket reserva um assento e reporta ticket_reserved com a
// passagem criada ou reservation_failed com o erro.
type ReserveBusTicket struct {
	*layer.Base

	repository  domain.BusTicketRepository
	publisher   EventPublisher
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger

	ticket  domain.BusTicket
	failure error
}

func NewReserveBusTicket(deps ReserveBusTicketDeps, opts ...layer.Option) (*ReserveBusTicket, error) {
	l := &ReserveBusTicket{
		repository:  deps.Repository,
		publisher:   deps.Publisher,
		idGenerator: deps.IDGenerator,
		logger:      deps.Logger,
	}
	if l.idGenerator == nil {
		l.idGenerator = pkgDomain.NewUUID
	}

	if deps.Logger != nil {
		opts = append([]layer.Option{layer.WithLogger(deps.Logger)}, opts...)
	}
	base, err := layer.New(reserveBusTicketDefinition, layer.Methods{
		Observers: map[string]layer.ObserverFunc{
			"publish_booked":  l.publishBooked,
			"log_reservation": l.logReservation,
			"log_rejection":   l.logRejection,
		},
		Handlers: map[string]layer.ErrorHandlerFunc{
			"observer_failed": l.observerFailed,
		},
	}, opts...)
	if err != nil {
		return nil, err
	}
	l.Base = base
	if l.logger == nil {
		l.logger = base.Logger()
	}
	return l, nil
}

func (l *ReserveBusTicket) Invoke(ctx context.Context) (any, error) {
	if err := l.Validate(); err != nil {
		return l.fail(ctx, err)
	}

	seatNumber, err := intInput(l.Base, "seat_number")
	if err != nil {
		return l.fail(ctx, err)
	}
	departureTime, err := timeInput(l.Base, "departure_time")
	if err != nil {
		return l.fail(ctx, err)
	}

	ticket := domain.BusTicket{
		ID:            l.idGenerator(),
		PassengerName: strings.TrimSpace(stringInput(l.Base, "passenger_name")),
		DepartureTime: departureTime.UTC(),
		SeatNumber:    seatNumber,
		SeatClass:     stringInput(l.Base, "seat_class"),
		Origin:        stringInput(l.Base, "origin"),
		Destination:   stringInput(l.Base, "destination"),
		Notes:         stringInput(l.Base, "notes"),
	}

	if err := l.repository.Save(ctx, ticket); err != nil {
		return l.fail(ctx, pkgerrors.Wrap(err, "save bus ticket"))
	}

	l.ticket = ticket
	return l.Success(ctx, ticket)
}

// Ticket retorna a passagem criada pela última invocação bem-sucedida.
func (l *ReserveBusTicket) Ticket() domain.BusTicket {
	return l.ticket
}

func (l *ReserveBusTicket) fail(ctx context.Context, err error) (any, error) {
	l.failure = err
	return l.Failure(ctx, err)
}

func (l *ReserveBusTicket) publishBooked(ctx context.Context) error {
	if l.publisher == nil {
		return nil
	}
	return l.publisher.Publish(ctx, NewBusTicketBookedEvent(l.ticket))
}

func (l *ReserveBusTicket) logReservation(ctx context.Context) error {
	pkgApp.LogInfo(ctx, l.logger, "bus ticket reserved", map[string]interface{}{
		"layer_id":  l.ID(),
		"ticket_id": l.ticket.ID,
		"seat":      l.ticket.SeatNumber,
	})
	return nil
}

func (l *ReserveBusTicket) logRejection(ctx context.Context) error {
	pkgApp.LogWarn(ctx, l.logger, "bus ticket reservation rejected", map[string]interface{}{
		"layer_id": l.ID(),
		"reason":   fmt.Sprint(l.failure),
	})
	return nil
}

func (l *ReserveBusTicket) observerFailed(ctx context.Context, err error) {
	observerFailuresTotal.WithLabelValues(l.Name()).Inc()
	pkgApp.LogError(ctx, l.logger, "reservation observer failed", err, map[string]interface{}{
		"layer_id":  l.ID(),
		"ticket_id": l.ticket.ID,
	})
}

func validPassengerName(b *layer.Base) error {
	if strings.TrimSpace(stringInput(b, "passenger_name")) == "" {
		return fmt.Errorf("%w: passenger_name must not be blank", ErrInvalidReservation)
	}
	return nil
}

func validSeatNumber(b *layer.Base) error {
	seat, err := intInput(b, "seat_number")
	if err != nil {
		return err
	}
	if seat < 1 || seat > MaxSeatNumber {
		return fmt.Errorf("%w: seat_number must be between 1 and %d", ErrInvalidReservation, MaxSeatNumber)
	}
	return nil
}

func validRoute(b *layer.Base) error {
	origin, destination := stringInput(b, "origin"), stringInput(b, "destination")
	if origin == "" || destination == "" {
		return fmt.Errorf("%w: origin and destination must not be blank", ErrInvalidReservation)
	}
	if strings.EqualFold(origin, destination) {
		return fmt.Errorf("%w: origin and destination must differ", ErrInvalidReservation)
	}
	return nil
}

func validSeatClass(b *layer.Base) error {
	if !slices.Contains(seatClasses, stringInput(b, "seat_class")) {
		return fmt.Errorf("%w: seat_class must be one of %s", ErrInvalidReservation, strings.Join(seatClasses, ", "))
	}
	return nil
}
