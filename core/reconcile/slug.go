package reconcile

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a display name into a NetBox slug.
// Accents are folded to ASCII, anything that is not a word character, space or hyphen
// is dropped and runs of separators collapse into a single hyphen.
func Slugify(value string) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(fold, value)
	if err != nil {
		folded = value
	}

	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)

	slug := nonWordChars.ReplaceAllString(strings.ToLower(ascii), "")
	slug = separators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-_")
}

// EqualNames compares two names case-insensitively, ignoring surrounding whitespace.
func EqualNames(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
