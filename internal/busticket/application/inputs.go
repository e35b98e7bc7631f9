package application

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mateusmacedo/go-layers/pkg/layer"
)

// intInput aceita os formatos produzidos por chamadas Go e por JSON decodificado.
func intInput(b *layer.Base, name string) (int, error) {
	switch v := b.Get(name).(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidReservation, name)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidReservation, name)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidReservation, name)
	}
}

func timeInput(b *layer.Base, name string) (time.Time, error) {
	switch v := b.Get(name).(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %s must be an RFC 3339 timestamp", ErrInvalidReservation, name)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s must be an RFC 3339 timestamp", ErrInvalidReservation, name)
	}
}

// stringInput trata valores ausentes ou de outro tipo como string vazia.
func stringInput(b *layer.Base, name string) string {
	return layer.Value[string](b, name)
}
