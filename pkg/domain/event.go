package domain

// Event é o fato publicado por um observer de layer e consumido pelos EventHandlers.
// EventName também é o tópico usado no pub/sub.
type Event[T any] interface {
	EventName() string
	Payload() T
}

// StaticEvent é um Event com nome e payload fixos.
type StaticEvent[T any] struct {
	Name string
	Data T
}

func (e StaticEvent[T]) EventName() string {
	return e.Name
}

func (e StaticEvent[T]) Payload() T {
	return e.Data
}
