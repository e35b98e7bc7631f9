package layer

import "context"

// Listener recebe o resultado de uma layer pelo nome do callback resolvido.
type Listener interface {
	Receive(ctx context.Context, callback string, args ...any) (any, error)
}

type ListenerFunc func(ctx context.Context, callback string, args ...any) (any, error)

func (f ListenerFunc) Receive(ctx context.Context, callback string, args ...any) (any, error) {
	return f(ctx, callback, args...)
}

// NullListener aceita qualquer callback e nunca retorna resultado nem erro.
type NullListener struct{}

func (NullListener) Receive(context.Context, string, ...any) (any, error) {
	return nil, nil
}

type CallbackFunc func(ctx context.Context, args ...any) (any, error)

// Callbacks é um Listener baseado em uma tabela de callbacks nomeados.
type Callbacks map[string]CallbackFunc

func (c Callbacks) Receive(ctx context.Context, callback string, args ...any) (any, error) {
	fn, ok := c[callback]
	if !ok {
		return nil, &CallbackNotFoundError{Callback: callback}
	}
	return fn(ctx, args...)
}

var (
	_ Listener = NullListener{}
	_ Listener = ListenerFunc(nil)
	_ Listener = Callbacks(nil)
)
