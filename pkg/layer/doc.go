// Package layer implementa objetos de comando ("layers"): unidades de lógica
// de negócio que declaram suas entradas no nível do tipo, reportam o
// resultado a um listener e notificam observers em caso de sucesso ou falha.
//
// Um tipo concreto declara sua Definition uma única vez e embute *Base:
//
//	var reserveSeat = layer.Define("ReserveSeat",
//	    layer.Required("passenger_name", "seat_number"),
//	    layer.Optional("notes"),
//	    layer.DefaultCallbacks("seat_rejected", "seat_reserved"),
//	    layer.Observers("publish_reserved"),
//	    layer.ObserverExceptionHandler("observer_failed"),
//	)
//
//	type ReserveSeat struct {
//	    *layer.Base
//	    publisher Publisher
//	}
//
//	func NewReserveSeat(publisher Publisher, opts ...layer.Option) (*ReserveSeat, error) {
//	    l := &ReserveSeat{publisher: publisher}
//	    base, err := layer.New(reserveSeat, layer.Methods{
//	        Observers: map[string]layer.ObserverFunc{"publish_reserved": l.publishReserved},
//	        Handlers:  map[string]layer.ErrorHandlerFunc{"observer_failed": l.observerFailed},
//	    }, opts...)
//	    if err != nil {
//	        return nil, err
//	    }
//	    l.Base = base
//	    return l, nil
//	}
//
//	func (l *ReserveSeat) Invoke(ctx context.Context) (any, error) {
//	    if err := l.Validate(); err != nil {
//	        return l.Failure(ctx, err)
//	    }
//	    return l.Success(ctx, layer.Value[string](l.Base, "passenger_name"))
//	}
//
// Construção e invocação em uma chamada:
//
//	layer.Run(ctx, func(opts ...layer.Option) (*ReserveSeat, error) {
//	    return NewReserveSeat(publisher, opts...)
//	}, layer.WithListener(listener), layer.WithInputs(inputs))
//
// Success e Failure sempre notificam os observers antes de chamar o
// listener. Erros e pânicos de observers ficam isolados em NotifyObservers:
// o primeiro observer que falhar interrompe os demais do mesmo evento, o
// exception handler (se houver) recebe o erro e o logger recebe um aviso.
// Erros do listener não são interceptados.
package layer
