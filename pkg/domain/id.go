package domain

import "github.com/google/uuid"

// IDGenerator gera identificadores para entidades e instâncias de layers.
type IDGenerator[T any] func() T

func NewUUID() string {
	return uuid.New().String()
}
