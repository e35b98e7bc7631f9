package application

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	reservationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "busticket",
		Name:      "reservations_total",
		Help:      "Bus ticket reservations by outcome.",
	}, []string{"outcome"})

	lookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "busticket",
		Name:      "lookups_total",
		Help:      "Bus ticket lookups by outcome.",
	}, []string{"outcome"})

	observerFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "busticket",
		Name:      "observer_failures_total",
		Help:      "Observer failures reported to layer exception handlers.",
	}, []string{"layer"})
)

// RegisterMetrics registra os contadores do módulo. Registros repetidos são ignorados.
func RegisterMetrics(registerer prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{reservationsTotal, lookupsTotal, observerFailuresTotal} {
		if err := registerer.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// outcomeCounter é um observer chamável que incrementa um contador.
type outcomeCounter struct {
	counter prometheus.Counter
}

func newOutcomeCounter(vec *prometheus.CounterVec, outcome string) *outcomeCounter {
	return &outcomeCounter{counter: vec.WithLabelValues(outcome)}
}

func (c *outcomeCounter) Notify(context.Context) error {
	c.counter.Inc()
	return nil
}
