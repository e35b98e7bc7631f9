package layer

import (
	"context"
	"reflect"
	"slices"
)

// Event identifica o resultado observado de uma layer.
type Event string

const (
	EventSuccess Event = "success"
	EventFailure Event = "failure"
)

// Notifier é um observer chamado diretamente, sem depender da instância.
type Notifier interface {
	Notify(ctx context.Context) error
}

type ObserverFunc func(ctx context.Context) error

func (f ObserverFunc) Notify(ctx context.Context) error {
	return f(ctx)
}

// ErrorHandlerFunc recebe o erro de um observer quando um exception handler está configurado.
type ErrorHandlerFunc func(ctx context.Context, err error)

// Methods é a tabela de métodos de uma instância, usada pelos observers declarados por nome.
type Methods struct {
	Observers map[string]ObserverFunc
	Handlers  map[string]ErrorHandlerFunc
}

type observerKind int

const (
	methodObserver observerKind = iota
	callableObserver
)

// ObserverSpec é um nome de método da instância ou um Notifier chamável.
type ObserverSpec struct {
	kind   observerKind
	name   string
	handle Notifier
}

// Method referencia um observer pela tabela de métodos da instância.
func Method(name string) ObserverSpec {
	return ObserverSpec{kind: methodObserver, name: name}
}

// Callable registra um Notifier chamado diretamente.
func Callable(observer Notifier) ObserverSpec {
	return ObserverSpec{kind: callableObserver, handle: observer}
}

func (s ObserverSpec) IsCallable() bool {
	return s.kind == callableObserver
}

// Name retorna o nome do método; vazio para observers chamáveis.
func (s ObserverSpec) Name() string {
	return s.name
}

func (s ObserverSpec) Handle() Notifier {
	return s.handle
}

func (s ObserverSpec) same(other ObserverSpec) bool {
	if s.kind != other.kind {
		return false
	}
	if s.kind == methodObserver {
		return s.name == other.name
	}
	if s.handle == nil || other.handle == nil {
		return s.handle == nil && other.handle == nil
	}
	// funções não são comparáveis, então observers desse tipo nunca colapsam
	if !reflect.ValueOf(s.handle).Comparable() || !reflect.ValueOf(other.handle).Comparable() {
		return false
	}
	return s.handle == other.handle
}

// ObserverRegistry associa eventos a conjuntos ordenados de observers.
type ObserverRegistry struct {
	specs            map[Event][]ObserverSpec
	exceptionHandler string
}

func (r *ObserverRegistry) register(event Event, specs ...ObserverSpec) {
	if r.specs == nil {
		r.specs = make(map[Event][]ObserverSpec)
	}
	for _, spec := range specs {
		if spec.kind == callableObserver && spec.handle == nil {
			continue
		}
		if slices.ContainsFunc(r.specs[event], spec.same) {
			continue
		}
		r.specs[event] = append(r.specs[event], spec)
	}
}

// Specs retorna os observers registrados para o evento, na ordem de registro.
func (r *ObserverRegistry) Specs(event Event) []ObserverSpec {
	return slices.Clone(r.specs[event])
}

func (r *ObserverRegistry) Events() []Event {
	events := make([]Event, 0, len(r.specs))
	for event := range r.specs {
		events = append(events, event)
	}
	slices.Sort(events)
	return events
}

// ExceptionHandler retorna o nome do método que recebe erros de observers.
func (r *ObserverRegistry) ExceptionHandler() string {
	return r.exceptionHandler
}
