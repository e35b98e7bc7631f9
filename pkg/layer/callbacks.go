package layer

const (
	OnFailureDefaultCallback = "on_failure"
	OnSuccessDefaultCallback = "on_success"
)

// CallbackConfig guarda os nomes de callback padrão de um tipo.
// Campos vazios usam as constantes da biblioteca.
type CallbackConfig struct {
	OnFailure string
	OnSuccess string
}

func (c CallbackConfig) OnFailureDefault() string {
	if c.OnFailure == "" {
		return OnFailureDefaultCallback
	}
	return c.OnFailure
}

func (c CallbackConfig) OnSuccessDefault() string {
	if c.OnSuccess == "" {
		return OnSuccessDefaultCallback
	}
	return c.OnSuccess
}

// resolve aplica a precedência: argumento explícito, padrão do tipo, constante.
func (c CallbackConfig) resolve(onFailure, onSuccess string) (string, string) {
	if onFailure == "" {
		onFailure = c.OnFailureDefault()
	}
	if onSuccess == "" {
		onSuccess = c.OnSuccessDefault()
	}
	return onFailure, onSuccess
}
