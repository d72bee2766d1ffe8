package translator

import (
	"context"
	"errors"
	"fmt"
)

// Translator define la frontera con el servicio externo de traducción.
// Toda falla (red, timeout, respuesta malformada) llega como *ProviderError;
// los llamadores la tratan como no-fatal para la operación completa.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// ProviderError envuelve la causa de una llamada de traducción fallida.
type ProviderError struct {
	Cause error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("translation provider: %v", e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// IsProviderError reporta si err proviene de la frontera del proveedor.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

type disabled struct {
	reason string
}

// NewDisabled devuelve un Translator que falla siempre con el motivo dado.
// Permite arrancar sin API key: el sistema sirve originales sin traducir.
func NewDisabled(reason string) Translator {
	if reason == "" {
		reason = "translator disabled"
	}
	return &disabled{reason: reason}
}

func (d *disabled) Translate(_ context.Context, _, _ string) (string, error) {
	return "", &ProviderError{Cause: errors.New(d.reason)}
}
