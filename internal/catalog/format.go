package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Slugify turns a category or component name into its URL path segment:
// lowercase words joined by hyphens.
func Slugify(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// FormatCategoryName reverses Slugify for display and matching: hyphens become
// spaces and every word gets an upper-case first letter. The rest of each word
// is left as-is, so the transform is idempotent.
func FormatCategoryName(segment string) string {
	words := strings.Fields(strings.ReplaceAll(segment, "-", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
