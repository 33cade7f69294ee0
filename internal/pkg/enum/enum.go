// Package enum resolves free-text enum values arriving from clients.
package enum

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
)

// Normalize lowercases text, strips diacritics and removes every whitespace rune.
// "Não Urgente" becomes "naourgente".
func Normalize(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Lookup normalizes raw and resolves it against table, whose keys must already be normalized.
func Lookup[T any](field, raw string, table map[string]T) (T, error) {
	if v, ok := table[Normalize(raw)]; ok {
		return v, nil
	}
	var zero T
	if strings.TrimSpace(raw) == "" {
		return zero, domainErrors.Validationf("%s is required", field)
	}
	return zero, domainErrors.Validationf("%s %q is not one of: %s", field, raw, strings.Join(Keys(table), ", "))
}

// Keys lists accepted spellings in a stable order.
func Keys[T any](table map[string]T) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
