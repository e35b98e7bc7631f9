package application

import (
	"context"

	"github.com/mateusmacedo/go-layers/pkg/domain"
)

// EventHandler consome eventos publicados pelos observers das layers.
type EventHandler[E domain.Event[T], T any] interface {
	Handle(ctx context.Context, event E) error
}

type EventHandlerFunc[E domain.Event[T], T any] func(ctx context.Context, event E) error

func (f EventHandlerFunc[E, T]) Handle(ctx context.Context, event E) error {
	return f(ctx, event)
}
