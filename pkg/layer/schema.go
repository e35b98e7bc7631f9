package layer

import (
	"maps"
	"slices"
	"sort"
)

// nameSet é um conjunto de nomes que preserva a ordem de declaração.
type nameSet struct {
	names []string
	index map[string]struct{}
}

func (s *nameSet) add(name string) {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
}

func (s *nameSet) has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *nameSet) list() []string {
	return slices.Clone(s.names)
}

// InputSpec descreve uma entrada declarada.
type InputSpec struct {
	Name       string
	Required   bool
	HasDefault bool
	Default    any
}

// InputSchema registra as entradas obrigatórias, opcionais e os valores padrão de um tipo.
// Só pode ser alterado durante Define.
type InputSchema struct {
	required nameSet
	optional nameSet
	defaults map[string]any
}

func (s *InputSchema) declareRequired(names ...string) {
	for _, name := range names {
		s.required.add(name)
	}
}

func (s *InputSchema) declareOptional(names ...string) {
	for _, name := range names {
		s.optional.add(name)
	}
}

func (s *InputSchema) declareOptionalWithDefault(defaults map[string]any) {
	if s.defaults == nil {
		s.defaults = make(map[string]any, len(defaults))
	}
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s.optional.add(name)
		s.defaults[name] = defaults[name]
	}
}

func (s *InputSchema) RequiredInputs() []string {
	return s.required.list()
}

func (s *InputSchema) OptionalInputs() []string {
	return s.optional.list()
}

// DefaultInputs retorna uma cópia dos valores padrão declarados.
func (s *InputSchema) DefaultInputs() map[string]any {
	return maps.Clone(s.defaults)
}

// AllInputs retorna as entradas obrigatórias seguidas das opcionais, sem repetição.
func (s *InputSchema) AllInputs() []string {
	var all nameSet
	for _, name := range s.required.names {
		all.add(name)
	}
	for _, name := range s.optional.names {
		all.add(name)
	}
	return all.names
}

func (s *InputSchema) Declared(name string) bool {
	return s.required.has(name) || s.optional.has(name)
}

func (s *InputSchema) Spec(name string) (InputSpec, bool) {
	if !s.Declared(name) {
		return InputSpec{}, false
	}
	value, hasDefault := s.defaults[name]
	return InputSpec{
		Name:       name,
		Required:   s.required.has(name),
		HasDefault: hasDefault,
		Default:    value,
	}, true
}

func (s *InputSchema) Specs() []InputSpec {
	names := s.AllInputs()
	specs := make([]InputSpec, 0, len(names))
	for _, name := range names {
		spec, _ := s.Spec(name)
		specs = append(specs, spec)
	}
	return specs
}

// bind aplica os valores padrão ao mapa recebido e valida as entradas.
// O mapa do chamador nunca é alterado.
func (s *InputSchema) bind(layerName string, supplied map[string]any) (map[string]any, error) {
	inputs := make(map[string]any, len(supplied)+len(s.defaults))
	for name, value := range supplied {
		inputs[name] = value
	}
	for name, value := range s.defaults {
		if _, ok := inputs[name]; !ok {
			inputs[name] = value
		}
	}

	var missing []string
	for _, name := range s.required.names {
		if _, ok := inputs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingRequiredInputsError{Layer: layerName, Missing: missing}
	}

	var extra []string
	for name := range inputs {
		if !s.Declared(name) {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, &UnexpectedInputsError{Layer: layerName, Extra: extra}
	}

	return inputs, nil
}
