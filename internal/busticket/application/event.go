package application

import (
	"context"
	"time"

	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	pkgDomain "github.com/mateusmacedo/go-layers/pkg/domain"
)

const BusTicketBookedEventName = "BusTicketBooked"

type BusTicketBookedData struct {
	TicketID      string    `json:"ticketId"`
	PassengerName string    `json:"passengerName"`
	DepartureTime time.Time `json:"departureTime"`
	SeatNumber    int       `json:"seatNumber"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
}

type busTicketBookedEvent struct {
	data BusTicketBookedData
}

func (e busTicketBookedEvent) EventName() string {
	return BusTicketBookedEventName
}

func (e busTicketBookedEvent) Payload() BusTicketBookedData {
	return e.data
}

// NewBusTicketBookedEvent cria o evento publicado quando uma passagem é reservada.
func NewBusTicketBookedEvent(ticket domain.BusTicket) pkgDomain.Event[BusTicketBookedData] {
	return busTicketBookedEvent{data: BusTicketBookedData{
		TicketID:      ticket.ID,
		PassengerName: ticket.PassengerName,
		DepartureTime: ticket.DepartureTime,
		SeatNumber:    ticket.SeatNumber,
		Origin:        ticket.Origin,
		Destination:   ticket.Destination,
	}}
}

// EventPublisher publica eventos de passagem reservada.
type EventPublisher interface {
	Publish(ctx context.Context, event pkgDomain.Event[BusTicketBookedData]) error
}
