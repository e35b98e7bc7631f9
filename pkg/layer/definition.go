package layer

// ValidationRule é uma regra de validação de campos executada por Base.Validate.
type ValidationRule func(b *Base) error

// Definition reúne as declarações de um tipo de layer: entradas, callbacks
// padrão, observers e regras de validação. É construída uma única vez com
// Define e não muda depois disso.
type Definition struct {
	name      string
	schema    InputSchema
	callbacks CallbackConfig
	observers ObserverRegistry
	rules     []ValidationRule
}

// DefinitionOption é uma declaração aplicada por Define.
type DefinitionOption func(*Definition)

// Define cria a definição de um tipo de layer.
//
// Exemplo:
//
//	var reserveSeat = layer.Define("ReserveSeat",
//	    layer.Required("passenger_name", "seat_number"),
//	    layer.OptionalWithDefault(map[string]any{"seat_class": "standard"}),
//	    layer.Observers("publish_booked"),
//	)
func Define(name string, opts ...DefinitionOption) *Definition {
	d := &Definition{name: name}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func Required(names ...string) DefinitionOption {
	return func(d *Definition) {
		d.schema.declareRequired(names...)
	}
}

func Optional(names ...string) DefinitionOption {
	return func(d *Definition) {
		d.schema.declareOptional(names...)
	}
}

func OptionalWithDefault(defaults map[string]any) DefinitionOption {
	return func(d *Definition) {
		d.schema.declareOptionalWithDefault(defaults)
	}
}

// DefaultCallbacks substitui os dois nomes de callback padrão do tipo.
// Um nome vazio volta a usar a constante da biblioteca.
func DefaultCallbacks(onFailure, onSuccess string) DefinitionOption {
	return func(d *Definition) {
		d.callbacks = CallbackConfig{OnFailure: onFailure, OnSuccess: onSuccess}
	}
}

// Observer registra observers para o evento de sucesso.
func Observer(specs ...ObserverSpec) DefinitionOption {
	return ObserverOf(EventSuccess, specs...)
}

func ObserverOf(event Event, specs ...ObserverSpec) DefinitionOption {
	return func(d *Definition) {
		d.observers.register(event, specs...)
	}
}

// Observers registra métodos da instância, por nome, para o evento de sucesso.
func Observers(names ...string) DefinitionOption {
	return ObserversOf(EventSuccess, names...)
}

func ObserversOf(event Event, names ...string) DefinitionOption {
	specs := make([]ObserverSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, Method(name))
	}
	return ObserverOf(event, specs...)
}

func ObserverExceptionHandler(name string) DefinitionOption {
	return func(d *Definition) {
		d.observers.exceptionHandler = name
	}
}

func Validates(rules ...ValidationRule) DefinitionOption {
	return func(d *Definition) {
		for _, rule := range rules {
			if rule != nil {
				d.rules = append(d.rules, rule)
			}
		}
	}
}

func (d *Definition) Name() string {
	return d.name
}

func (d *Definition) Schema() *InputSchema {
	return &d.schema
}

func (d *Definition) Callbacks() CallbackConfig {
	return d.callbacks
}

func (d *Definition) Observers() *ObserverRegistry {
	return &d.observers
}
