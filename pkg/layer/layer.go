package layer

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"runtime/debug"

	"github.com/mateusmacedo/go-layers/pkg/application"
	"github.com/mateusmacedo/go-layers/pkg/domain"
	zapAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/zaplogger/adapter"
)

// Layer é o contrato de invocação implementado por toda layer concreta.
type Layer interface {
	Invoke(ctx context.Context) (any, error)
}

// Run constrói a layer e a invoca em seguida.
func Run[L Layer](ctx context.Context, construct func(opts ...Option) (L, error), opts ...Option) (any, error) {
	l, err := construct(opts...)
	if err != nil {
		return nil, err
	}
	return l.Invoke(ctx)
}

type options struct {
	listener    Listener
	onFailure   string
	onSuccess   string
	inputs      map[string]any
	logger      application.AppLogger
	idGenerator domain.IDGenerator[string]
}

type Option func(*options)

func WithListener(listener Listener) Option {
	return func(o *options) {
		o.listener = listener
	}
}

// WithOnFailure troca o callback de falha desta instância. Um nome vazio
// equivale a não informar a opção.
func WithOnFailure(callback string) Option {
	return func(o *options) {
		o.onFailure = callback
	}
}

// WithOnSuccess troca o callback de sucesso desta instância. Um nome vazio
// equivale a não informar a opção.
func WithOnSuccess(callback string) Option {
	return func(o *options) {
		o.onSuccess = callback
	}
}

// WithInputs acrescenta as entradas informadas ao mapa de entradas da layer.
func WithInputs(inputs map[string]any) Option {
	return func(o *options) {
		for name, value := range inputs {
			o.inputs[name] = value
		}
	}
}

func WithInput(name string, value any) Option {
	return func(o *options) {
		o.inputs[name] = value
	}
}

func WithLogger(logger application.AppLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithIDGenerator(idGenerator domain.IDGenerator[string]) Option {
	return func(o *options) {
		o.idGenerator = idGenerator
	}
}

// Base é a raiz de composição embutida pelas layers concretas.
type Base struct {
	id         string
	definition *Definition
	methods    Methods
	logger     application.AppLogger

	listener  Listener
	onFailure string
	onSuccess string

	inputs map[string]any
	values map[string]any

	requiredAttributes map[string]any
	optionalAttributes map[string]any
	attributes         map[string]any
}

// New constrói a base de uma layer. O listener e os nomes de callback são
// resolvidos antes da validação das entradas; uma entrada inválida aborta a
// construção e nenhuma instância é retornada.
func New(definition *Definition, methods Methods, opts ...Option) (*Base, error) {
	o := options{inputs: make(map[string]any)}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Base{
		definition: definition,
		methods:    methods,
		logger:     o.logger,
	}
	if b.logger == nil {
		b.logger = zapAdapter.GlobalAppLogger()
	}
	if o.idGenerator == nil {
		o.idGenerator = domain.NewUUID
	}
	b.id = o.idGenerator()

	b.listener = o.listener
	if b.listener == nil {
		b.listener = NullListener{}
	}
	b.onFailure, b.onSuccess = definition.callbacks.resolve(o.onFailure, o.onSuccess)

	inputs, err := definition.schema.bind(definition.name, o.inputs)
	if err != nil {
		return nil, err
	}
	b.inputs = inputs
	b.values = make(map[string]any, len(inputs))
	for name, value := range inputs {
		b.values[name] = value
	}

	return b, nil
}

// Invoke deve ser implementado pela layer concreta.
func (b *Base) Invoke(context.Context) (any, error) {
	return nil, fmt.Errorf("%s: %w", b.definition.name, ErrNotImplemented)
}

func (b *Base) ID() string {
	return b.id
}

func (b *Base) Definition() *Definition {
	return b.definition
}

func (b *Base) Name() string {
	return b.definition.name
}

func (b *Base) Listener() Listener {
	return b.listener
}

func (b *Base) OnFailure() string {
	return b.onFailure
}

func (b *Base) OnSuccess() string {
	return b.onSuccess
}

func (b *Base) Logger() application.AppLogger {
	return b.logger
}

// Inputs retorna uma cópia das entradas recebidas, já com os valores padrão.
func (b *Base) Inputs() map[string]any {
	return maps.Clone(b.inputs)
}

// Get retorna o valor atual da entrada; nil quando não foi definida.
func (b *Base) Get(name string) any {
	return b.values[name]
}

// Set altera o valor de uma entrada declarada.
func (b *Base) Set(name string, value any) error {
	if !b.definition.schema.Declared(name) {
		return fmt.Errorf("%s: %w: %s", b.definition.name, ErrUndeclaredInput, name)
	}
	b.values[name] = value
	return nil
}

// Value retorna a entrada convertida para T, ou o valor zero de T.
func Value[T any](b *Base, name string) T {
	v, _ := Lookup[T](b, name)
	return v
}

// Lookup retorna a entrada convertida para T e se a conversão foi possível.
func Lookup[T any](b *Base, name string) (T, bool) {
	v, ok := b.values[name].(T)
	return v, ok
}

// Attributes retorna todas as entradas declaradas com seus valores. O mapa é
// calculado na primeira chamada e reaproveitado depois.
func (b *Base) Attributes() map[string]any {
	if b.attributes == nil {
		b.attributes = make(map[string]any)
		maps.Copy(b.attributes, b.RequiredAttributes())
		maps.Copy(b.attributes, b.OptionalAttributes())
	}
	return maps.Clone(b.attributes)
}

func (b *Base) RequiredAttributes() map[string]any {
	if b.requiredAttributes == nil {
		b.requiredAttributes = b.collect(b.definition.schema.required.names)
	}
	return maps.Clone(b.requiredAttributes)
}

func (b *Base) OptionalAttributes() map[string]any {
	if b.optionalAttributes == nil {
		b.optionalAttributes = b.collect(b.definition.schema.optional.names)
	}
	return maps.Clone(b.optionalAttributes)
}

func (b *Base) collect(names []string) map[string]any {
	attrs := make(map[string]any, len(names))
	for _, name := range names {
		attrs[name] = b.values[name]
	}
	return attrs
}

// Validate executa as regras de validação declaradas com Validates.
func (b *Base) Validate() error {
	var errs []error
	for _, rule := range b.definition.rules {
		if err := rule(b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Success notifica os observers de sucesso e depois chama o callback de sucesso do listener.
func (b *Base) Success(ctx context.Context, args ...any) (any, error) {
	b.NotifyObservers(ctx, EventSuccess)
	return b.listener.Receive(ctx, b.onSuccess, args...)
}

// Failure notifica os observers de falha e depois chama o callback de falha do listener.
func (b *Base) Failure(ctx context.Context, args ...any) (any, error) {
	b.NotifyObservers(ctx, EventFailure)
	return b.listener.Receive(ctx, b.onFailure, args...)
}

// NotifyObservers chama os observers do evento na ordem de registro. O primeiro
// observer que falhar (erro ou pânico) interrompe a iteração; os seguintes não
// são chamados. Nenhum erro sai deste método.
func (b *Base) NotifyObservers(ctx context.Context, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.handleObserverError(ctx, event, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	for _, spec := range b.definition.observers.specs[event] {
		if err := b.invokeObserver(ctx, spec); err != nil {
			b.handleObserverError(ctx, event, err)
			return
		}
	}
}

func (b *Base) invokeObserver(ctx context.Context, spec ObserverSpec) error {
	if spec.kind == callableObserver {
		return spec.handle.Notify(ctx)
	}

	observer, ok := b.methods.Observers[spec.name]
	if !ok || observer == nil {
		return &MethodNotFoundError{Layer: b.definition.name, Method: spec.name}
	}
	return observer(ctx)
}

func (b *Base) handleObserverError(ctx context.Context, event Event, err error) {
	fields := map[string]interface{}{
		"layer":    b.definition.name,
		"layer_id": b.id,
		"event":    string(event),
	}

	b.callExceptionHandler(ctx, err, fields)

	b.logger.Warn(ctx, fmt.Sprintf("%s observers failed with %s", b.definition.name, err.Error()), fields)
	if trace, ok := errorTrace(err); ok {
		b.logger.Debug(ctx, trace, fields)
	}
}

func (b *Base) callExceptionHandler(ctx context.Context, err error, fields map[string]interface{}) {
	name := b.definition.observers.exceptionHandler
	if name == "" {
		return
	}

	handler, ok := b.methods.Handlers[name]
	if !ok || handler == nil {
		application.LogWarn(ctx, b.logger, "observer exception handler not found", withField(fields, "handler", name))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			application.LogWarn(ctx, b.logger, "observer exception handler panicked", withField(withField(fields, "handler", name), "panic", fmt.Sprint(r)))
		}
	}()
	handler(ctx, err)
}

func withField(fields map[string]interface{}, key string, value interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[key] = value
	return out
}

var _ Layer = (*Base)(nil)
