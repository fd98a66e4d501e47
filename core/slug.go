package core

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns an arbitrary display name into a URL-safe slug:
// diacritics are stripped, everything else collapses to lowercase ASCII and hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		s = strings.ToLower(strings.TrimSpace(s))
	}
	s = nonSlugRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
