package catalog

import (
	"html"
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxSuggestions caps the autocomplete result list.
const MaxSuggestions = 5

const (
	highlightOpen  = "<b>"
	highlightClose = "</b>"
)

// Suggestion is one autocomplete entry. HighlightedText is HTML: the matched
// part is wrapped in <b> and everything else is escaped.
type Suggestion struct {
	PlainText       string `json:"plainText"`
	HighlightedText string `json:"highlightedText"`
}

type match struct {
	text       string
	lower      string
	start, end int
}

// RankSuggestions filters candidates down to those containing query
// (case-insensitive), collapses duplicates, and orders them with prefix
// matches first and then alphabetically. At most limit entries are returned;
// a non-positive limit or one above MaxSuggestions means MaxSuggestions.
func RankSuggestions(candidates []string, query string, limit int) []Suggestion {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Suggestion{}
	}
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}

	seen := make(map[string]struct{}, len(candidates))
	matches := make([]match, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		start, end, ok := indexFold(c, query)
		if !ok {
			continue
		}
		matches = append(matches, match{text: c, lower: strings.ToLower(c), start: start, end: end})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if (a.start == 0) != (b.start == 0) {
			return a.start == 0
		}
		if a.lower != b.lower {
			return a.lower < b.lower
		}
		return a.text < b.text
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Suggestion, len(matches))
	for i, m := range matches {
		out[i] = Suggestion{
			PlainText:       m.text,
			HighlightedText: wrap(m.text, m.start, m.end),
		}
	}
	return out
}

// Highlight wraps the first case-insensitive occurrence of query in text with
// <b> tags. Text without a match is returned escaped and unwrapped.
func Highlight(text, query string) string {
	start, end, ok := indexFold(text, query)
	if !ok {
		return html.EscapeString(text)
	}
	return wrap(text, start, end)
}

func wrap(text string, start, end int) string {
	var b strings.Builder
	b.WriteString(html.EscapeString(text[:start]))
	b.WriteString(highlightOpen)
	b.WriteString(html.EscapeString(text[start:end]))
	b.WriteString(highlightClose)
	b.WriteString(html.EscapeString(text[end:]))
	return b.String()
}

// indexFold returns the byte range of the first occurrence of sub in s under
// per-rune case folding.
func indexFold(s, sub string) (int, int, bool) {
	if sub == "" {
		return 0, 0, false
	}
	for i := 0; i < len(s); {
		if end, ok := hasPrefixFold(s[i:], sub); ok {
			return i, i + end, true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return 0, 0, false
}

func hasPrefixFold(s, prefix string) (int, bool) {
	j := 0
	for _, pr := range prefix {
		if j >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[j:])
		if r != pr && !strings.EqualFold(string(r), string(pr)) {
			return 0, false
		}
		j += size
	}
	return j, true
}
