package application

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mateusmacedo/go-layers/internal/busticket/domain"
	pkgApp "github.com/mateusmacedo/go-layers/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-layers/pkg/domain"
	zapAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/zaplogger/adapter"
	"github.com/mateusmacedo/go-layers/pkg/layer"
)

func newObservedLogger() (pkgApp.AppLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zapAdapter.NewZapAppLoggerFrom(zap.New(core)), logs
}

type stubRepository struct {
	mu      sync.Mutex
	saved   []domain.BusTicket
	saveErr error
	found   []domain.BusTicket
	findErr error
}

func (r *stubRepository) Save(_ context.Context, busTicket domain.BusTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, busTicket)
	return nil
}

func (r *stubRepository) FindByPassengerName(context.Context, string) ([]domain.BusTicket, error) {
	return r.found, r.findErr
}

type stubPublisher struct {
	events []pkgDomain.Event[BusTicketBookedData]
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, event pkgDomain.Event[BusTicketBookedData]) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type received struct {
	callback string
	args     []any
}

func recorder(into *[]received) layer.Listener {
	return layer.ListenerFunc(func(_ context.Context, callback string, args ...any) (any, error) {
		*into = append(*into, received{callback: callback, args: args})
		return callback, nil
	})
}

var errBrokerDown = errors.New("broker down")
