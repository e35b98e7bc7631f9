package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	"github.com/mateusmacedo/go-layers/pkg/application"
)

type InMemoryBusTicketRepository struct {
	mu     sync.RWMutex
	data   map[string]domain.BusTicket
	logger application.AppLogger
}

func NewInMemoryBusTicketRepository(logger application.AppLogger) *InMemoryBusTicketRepository {
	return &InMemoryBusTicketRepository{
		data:   make(map[string]domain.BusTicket),
		logger: logger,
	}
}

func (r *InMemoryBusTicketRepository) Save(ctx context.Context, busTicket domain.BusTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[busTicket.ID]; exists {
		application.LogInfo(ctx, r.logger, "busTicket already exists", map[string]interface{}{
			"busTicket": busTicket,
		})
		return domain.ErrBusTicketAlreadyExists
	}

	for _, existing := range r.data {
		if existing.SameSeat(busTicket) {
			application.LogInfo(ctx, r.logger, "seat already taken", map[string]interface{}{
				"busTicket": busTicket,
			})
			return domain.ErrSeatAlreadyTaken
		}
	}

	r.data[busTicket.ID] = busTicket
	application.LogInfo(ctx, r.logger, "busTicket saved", map[string]interface{}{
		"busTicket": busTicket,
	})
	return nil
}

// FindByPassengerName retorna as passagens ordenadas por horário de partida.
func (r *InMemoryBusTicketRepository) FindByPassengerName(ctx context.Context, passengerName string) ([]domain.BusTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var busTickets []domain.BusTicket
	for _, busTicket := range r.data {
		if busTicket.PassengerName == passengerName {
			busTickets = append(busTickets, busTicket)
		}
	}
	sort.Slice(busTickets, func(i, j int) bool {
		if busTickets[i].DepartureTime.Equal(busTickets[j].DepartureTime) {
			return busTickets[i].SeatNumber < busTickets[j].SeatNumber
		}
		return busTickets[i].DepartureTime.Before(busTickets[j].DepartureTime)
	})

	application.LogInfo(ctx, r.logger, "busTickets found", map[string]interface{}{
		"passengerName": passengerName,
		"count":         len(busTickets),
	})

	return busTickets, nil
}
