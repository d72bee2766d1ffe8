package translator

import "context"

// Mock permite tests sin llamar a un proveedor real.
type Mock struct {
	Response string
	Err      error
}

func (m *Mock) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	return m.Response, m.Err
}
