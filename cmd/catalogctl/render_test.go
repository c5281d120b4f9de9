//go:build unit

package main

import (
	"strings"
	"testing"
	"ui-market/internal/catalog"
	"ui-market/internal/data"
	"ui-market/internal/service"
)

func TestRenderSuggestion(t *testing.T) {
	testCases := []struct {
		highlighted string
		want        string
	}{
		{"F<b>oot</b>er", "Footer"},
		{"Tom &amp; <b>Jerry</b>", "Tom & Jerry"},
		{"plain", "plain"},
	}
	for _, tc := range testCases {
		got := renderSuggestion(catalog.Suggestion{HighlightedText: tc.highlighted})
		if !strings.Contains(stripANSI(got), tc.want) {
			t.Errorf("renderSuggestion(%q) = %q, want %q", tc.highlighted, got, tc.want)
		}
	}
}

func TestListParams(t *testing.T) {
	flags := map[string]string{"free": "yes", "min-price": "10", "page": "0", "category": "navigation-bars"}
	params := listParams(func(name string) string { return flags[name] })

	if len(params) != 4 {
		t.Errorf("expected only set flags, got %v", params)
	}
	f := catalog.NewFilter(params, 12)
	if f.IsFree != nil {
		t.Error("expected 'yes' not to set the free flag")
	}
	if f.MinPrice == nil || *f.MinPrice != 10 || f.Page != 1 || f.Category != "Navigation Bars" {
		t.Errorf("unexpected filter: %+v", f)
	}
}

func TestRenderListing(t *testing.T) {
	p := 19.0
	out := stripANSI(renderListing(&service.ComponentsResult{
		Components:      []*data.Component{{Name: "Navbar", Slug: "navbar", Price: &p, IsFeatured: true}},
		ComponentsCount: 1,
		TotalComponents: 6,
		Page:            1,
		TotalPages:      1,
	}))
	for _, want := range []string{"1 of 6 components", "Navbar", "$19.00", "featured", "navbar"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing does not contain %q:\n%s", want, out)
		}
	}

	empty := stripANSI(renderListing(&service.ComponentsResult{Components: []*data.Component{}, Page: 3}))
	if !strings.Contains(empty, "No components match") {
		t.Errorf("unexpected empty listing: %s", empty)
	}
}

// stripANSI removes terminal escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
