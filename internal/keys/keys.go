package keys

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName produces the registry key for a display name: diacritics are
// stripped, the result is lower-cased and every run of non-alphanumeric
// characters collapses to a single underscore. "Philosopher's Transmute"
// becomes "philosopher_s_transmute".
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "_")
	return strings.Trim(s, "_")
}

// NormalizeIdentifier trims and lower-cases an element or code-bit id as typed
// by a player.
func NormalizeIdentifier(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// SortedSet returns the normalized identifiers sorted ascending. Empty
// identifiers are dropped. Duplicates are kept so callers can detect them.
func SortedSet(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		s := NormalizeIdentifier(id)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// CompositionKey produces a canonical key for an element/code-bit pair of
// sets: "fire,chaos|damage" and "chaos,fire|damage" both become
// "chaos,fire|damage".
func CompositionKey(elements, codeBits []string) string {
	return strings.Join(SortedSet(elements), ",") + "|" + strings.Join(SortedSet(codeBits), ",")
}
