package service

import (
	"github.com/abadojack/whatlanggo"

	"github.com/ALIAQIL/multilang-chat/internal/domain"
)

// DetectLanguage infiere el idioma de un texto cuando el cliente no lo indica.
// Devuelve el tag normalizado ("english", "french"), o "" si la detección no
// es confiable; el llamador decide el default en ese caso.
func DetectLanguage(content string) string {
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return ""
	}
	return domain.NormalizeLanguage(info.Lang.String())
}
