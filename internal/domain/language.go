package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Los idiomas se identifican por nombre legible ("English", "French"). Todo el
// subsistema compara y almacena la forma normalizada; la forma de display solo
// existe en el borde de transporte y en los prompts del proveedor.

// NormalizeLanguage es el único punto de normalización de tags de idioma.
// "  French " y "french" colapsan en el mismo idioma activo.
func NormalizeLanguage(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// SameLanguage compara dos tags bajo la normalización canónica.
func SameLanguage(a, b string) bool {
	return NormalizeLanguage(a) == NormalizeLanguage(b)
}

// DisplayLanguage devuelve la forma presentable de un tag normalizado.
func DisplayLanguage(tag string) string {
	norm := NormalizeLanguage(tag)
	if norm == "" {
		return ""
	}
	return cases.Title(language.English).String(norm)
}
