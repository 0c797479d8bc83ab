package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips accents.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// Token turns free text such as "Locação" or "frota parada" into LOCACAO or FROTA_PARADA.
func Token(s string) string {
	folded := strings.ToUpper(Fold(s))
	folded = strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_' || r == '/':
			return '_'
		default:
			return -1
		}
	}, folded)
	for strings.Contains(folded, "__") {
		folded = strings.ReplaceAll(folded, "__", "_")
	}
	return strings.Trim(folded, "_")
}

// ContainsFold reports whether needle occurs in s ignoring case and accents.
func ContainsFold(s, needle string) bool {
	return strings.Contains(Fold(s), Fold(needle))
}
