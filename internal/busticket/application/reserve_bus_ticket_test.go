package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	"github.com/mateusmacedo/go-layers/pkg/layer"
)

type ReserveBusTicketSuite struct {
	suite.Suite

	ctx        context.Context
	repository *stubRepository
	publisher  *stubPublisher
	logs       *observer.ObservedLogs
	received   []received
	deps       ReserveBusTicketDeps
	departure  time.Time
}

func TestReserveBusTicketSuite(t *testing.T) {
	suite.Run(t, new(ReserveBusTicketSuite))
}

func (s *ReserveBusTicketSuite) SetupTest() {
	s.ctx = context.Background()
	s.repository = &stubRepository{}
	s.publisher = &stubPublisher{}
	s.received = nil
	s.departure = time.Date(2026, 11, 2, 8, 30, 0, 0, time.UTC)

	logger, logs := newObservedLogger()
	s.logs = logs
	s.deps = ReserveBusTicketDeps{
		Repository:  s.repository,
		Publisher:   s.publisher,
		IDGenerator: func() string { return "ticket-1" },
		Logger:      logger,
	}
}

func (s *ReserveBusTicketSuite) inputs() map[string]any {
	return map[string]any{
		"passenger_name": "Ana",
		"departure_time": s.departure,
		"seat_number":    12,
		"origin":         "Recife",
		"destination":    "Natal",
	}
}

func (s *ReserveBusTicketSuite) run(inputs map[string]any) (any, error) {
	return layer.Run(s.ctx, func(opts ...layer.Option) (*ReserveBusTicket, error) {
		return NewReserveBusTicket(s.deps, opts...)
	}, layer.WithListener(recorder(&s.received)), layer.WithInputs(inputs))
}

func (s *ReserveBusTicketSuite) TestReservesTicket() {
	reserved := testutil.ToFloat64(reservationsTotal.WithLabelValues("reserved"))

	result, err := s.run(s.inputs())
	s.Require().NoError(err)
	s.Equal(TicketReservedCallback, result)

	s.Require().Len(s.received, 1)
	s.Equal(TicketReservedCallback, s.received[0].callback)
	ticket, ok := s.received[0].args[0].(domain.BusTicket)
	s.Require().True(ok)
	s.Equal("ticket-1", ticket.ID)
	s.Equal("Ana", ticket.PassengerName)
	s.Equal("standard", ticket.SeatClass)
	s.Equal(12, ticket.SeatNumber)

	s.Equal([]domain.BusTicket{ticket}, s.repository.saved)
	s.Require().Len(s.publisher.events, 1)
	s.Equal(BusTicketBookedEventName, s.publisher.events[0].EventName())
	s.Equal("ticket-1", s.publisher.events[0].Payload().TicketID)
	s.Equal(reserved+1, testutil.ToFloat64(reservationsTotal.WithLabelValues("reserved")))
	s.Equal(1, s.logs.FilterMessage("bus ticket reserved").Len())
}

func (s *ReserveBusTicketSuite) TestAcceptsDecodedJSONValues() {
	inputs := s.inputs()
	inputs["seat_number"] = json.Number("7")
	inputs["departure_time"] = s.departure.Format(time.RFC3339)
	inputs["seat_class"] = "sleeper"
	inputs["notes"] = "window"

	_, err := s.run(inputs)
	s.Require().NoError(err)

	s.Require().Len(s.repository.saved, 1)
	saved := s.repository.saved[0]
	s.Equal(7, saved.SeatNumber)
	s.True(saved.DepartureTime.Equal(s.departure))
	s.Equal("sleeper", saved.SeatClass)
	s.Equal("window", saved.Notes)
}

func (s *ReserveBusTicketSuite) TestMissingInputsAbortConstruction() {
	inputs := s.inputs()
	delete(inputs, "origin")

	result, err := s.run(inputs)
	s.Nil(result)
	s.ErrorIs(err, layer.ErrMissingRequiredInputs)
	s.EqualError(err, "Missing required inputs: origin")
	s.Empty(s.received)
}

func (s *ReserveBusTicketSuite) TestUndeclaredInputsAbortConstruction() {
	inputs := s.inputs()
	inputs["coupon"] = "FREE"

	_, err := s.run(inputs)
	s.ErrorIs(err, layer.ErrUnexpectedInputs)
	s.Empty(s.received)
}

func (s *ReserveBusTicketSuite) TestRejectsInvalidReservations() {
	cases := map[string]func(map[string]any){
		"seat out of range":  func(in map[string]any) { in["seat_number"] = 61 },
		"seat not a number":  func(in map[string]any) { in["seat_number"] = "twelve" },
		"blank passenger":    func(in map[string]any) { in["passenger_name"] = "  " },
		"same route ends":    func(in map[string]any) { in["destination"] = "recife" },
		"unknown seat class": func(in map[string]any) { in["seat_class"] = "first" },
		"bad departure":      func(in map[string]any) { in["departure_time"] = "tomorrow" },
	}

	for name, mutate := range cases {
		s.Run(name, func() {
			s.received = nil
			rejected := testutil.ToFloat64(reservationsTotal.WithLabelValues("rejected"))
			inputs := s.inputs()
			mutate(inputs)

			result, err := s.run(inputs)
			s.Require().NoError(err)
			s.Equal(ReservationFailedCallback, result)

			s.Require().Len(s.received, 1)
			s.Equal(ReservationFailedCallback, s.received[0].callback)
			failure, ok := s.received[0].args[0].(error)
			s.Require().True(ok)
			s.ErrorIs(failure, ErrInvalidReservation)
			s.Equal(rejected+1, testutil.ToFloat64(reservationsTotal.WithLabelValues("rejected")))
		})
	}
	s.Empty(s.repository.saved)
	s.Empty(s.publisher.events)
}

func (s *ReserveBusTicketSuite) TestRepositoryErrorReportsFailure() {
	s.repository.saveErr = domain.ErrSeatAlreadyTaken

	_, err := s.run(s.inputs())
	s.Require().NoError(err)

	s.Require().Len(s.received, 1)
	s.Equal(ReservationFailedCallback, s.received[0].callback)
	s.ErrorIs(s.received[0].args[0].(error), domain.ErrSeatAlreadyTaken)
	s.Equal(1, s.logs.FilterMessage("bus ticket reservation rejected").Len())
}

func (s *ReserveBusTicketSuite) TestPublishFailureStillReportsSuccess() {
	s.publisher.err = errBrokerDown
	failures := testutil.ToFloat64(observerFailuresTotal.WithLabelValues("ReserveBusTicket"))

	_, err := s.run(s.inputs())
	s.Require().NoError(err)

	s.Require().Len(s.received, 1)
	s.Equal(TicketReservedCallback, s.received[0].callback)
	s.Equal(failures+1, testutil.ToFloat64(observerFailuresTotal.WithLabelValues("ReserveBusTicket")))
	s.Equal(1, s.logs.FilterMessage("ReserveBusTicket observers failed with broker down").Len())
	s.Equal(1, s.logs.FilterMessage("reservation observer failed").Len())
	s.Zero(s.logs.FilterMessage("bus ticket reserved").Len())
}

func (s *ReserveBusTicketSuite) TestCallbacksCanBeOverridden() {
	_, err := layer.Run(s.ctx, func(opts ...layer.Option) (*ReserveBusTicket, error) {
		return NewReserveBusTicket(s.deps, opts...)
	}, layer.WithListener(recorder(&s.received)), layer.WithInputs(s.inputs()), layer.WithOnSuccess("booked"))
	s.Require().NoError(err)

	s.Require().Len(s.received, 1)
	s.Equal("booked", s.received[0].callback)
}
