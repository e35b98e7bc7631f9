package application

import (
	"context"

	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-layers/pkg/application"
	"github.com/mateusmacedo/go-layers/pkg/layer"
)

var findBusTicketsDefinition = layer.Define("FindBusTickets",
	layer.Required("passenger_name"),
	layer.Observer(layer.Callable(newOutcomeCounter(lookupsTotal, "found"))),
	layer.ObserverOf(layer.EventFailure, layer.Callable(newOutcomeCounter(lookupsTotal, "failed"))),
)

// FindBusTickets busca as passagens de um passageiro e reporta on_success com
// a lista encontrada ou on_failure com o erro do repositório.
type FindBusTickets struct {
	*layer.Base

	repository domain.BusTicketRepository
	logger     pkgApp.AppLogger
}

func NewFindBusTickets(repository domain.BusTicketRepository, logger pkgApp.AppLogger, opts ...layer.Option) (*FindBusTickets, error) {
	if logger != nil {
		opts = append([]layer.Option{layer.WithLogger(logger)}, opts...)
	}
	base, err := layer.New(findBusTicketsDefinition, layer.Methods{}, opts...)
	if err != nil {
		return nil, err
	}
	return &FindBusTickets{Base: base, repository: repository, logger: base.Logger()}, nil
}

func (l *FindBusTickets) Invoke(ctx context.Context) (any, error) {
	passengerName := stringInput(l.Base, "passenger_name")

	busTickets, err := l.repository.FindByPassengerName(ctx, passengerName)
	if err != nil {
		pkgApp.LogError(ctx, l.logger, "error finding bus tickets", err, map[string]interface{}{
			"passenger_name": passengerName,
		})
		return l.Failure(ctx, err)
	}

	if busTickets == nil {
		busTickets = []domain.BusTicket{}
	}
	return l.Success(ctx, busTickets)
}
