// Package textnorm normaliza texto libre para búsquedas sin acentos ni mayúsculas.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, sin diacríticos y con espacios colapsados.
// "  José  PÉREZ " -> "jose perez". La ñ se conserva como n.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// CollapseSpaces recorta y colapsa espacios internos sin alterar el resto.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
