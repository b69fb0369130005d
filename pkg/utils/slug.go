package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	invalidSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	separatorRuns    = regexp.MustCompile(`[\s-]+`)
)

// GenerateSlug produces a URL-safe identifier from display text: lowercase
// ASCII letters, digits, and single hyphens, with no leading or trailing
// hyphen. It is idempotent, so an already-generated slug passes through
// unchanged.
func GenerateSlug(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	text, _, _ = transform.String(t, text)

	text = strings.ToLower(strings.TrimSpace(text))
	text = invalidSlugChars.ReplaceAllString(text, "")
	text = separatorRuns.ReplaceAllString(text, "-")

	return strings.Trim(text, "-")
}

// GenerateSlugWithLimit truncates the generated slug to maxLen characters.
// Truncation can land on a hyphen, so trailing hyphens are stripped again.
func GenerateSlugWithLimit(text string, maxLen int) string {
	slug := GenerateSlug(text)
	if maxLen > 0 && len(slug) > maxLen {
		slug = strings.TrimRight(slug[:maxLen], "-")
	}
	return slug
}
