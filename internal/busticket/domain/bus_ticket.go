package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrBusTicketAlreadyExists = errors.New("busTicket already exists")
	ErrSeatAlreadyTaken       = errors.New("seat already taken")
)

type BusTicket struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	PassengerName string    `json:"passengerName" gorm:"index"`
	DepartureTime time.Time `json:"departureTime" gorm:"uniqueIndex:idx_trip_seat"`
	SeatNumber    int       `json:"seatNumber" gorm:"uniqueIndex:idx_trip_seat"`
	SeatClass     string    `json:"seatClass"`
	Origin        string    `json:"origin" gorm:"uniqueIndex:idx_trip_seat"`
	Destination   string    `json:"destination" gorm:"uniqueIndex:idx_trip_seat"`
	Notes         string    `json:"notes,omitempty"`
}

// SameSeat indica se as duas passagens ocupam o mesmo assento da mesma viagem.
func (t BusTicket) SameSeat(other BusTicket) bool {
	return t.SeatNumber == other.SeatNumber &&
		t.DepartureTime.Equal(other.DepartureTime) &&
		t.Origin == other.Origin &&
		t.Destination == other.Destination
}

type BusTicketRepository interface {
	Save(ctx context.Context, busTicket BusTicket) error
	FindByPassengerName(ctx context.Context, passengerName string) ([]BusTicket, error)
}
