// Package search normaliza términos de búsqueda de productos: minúsculas y
// sin marcas diacríticas, para que "bujía" y "BUJIA" encuentren lo mismo.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize devuelve el término en minúsculas, sin tildes y sin espacios
// sobrantes. Se aplica tanto al término de búsqueda como al nombre indexado.
func Normalize(s string) string {
	out, _, err := transform.String(folder, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
