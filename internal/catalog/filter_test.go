//go:build unit

package catalog

import (
	"net/url"
	"testing"
)

func TestNewFilter_Defaults(t *testing.T) {
	f := NewFilter(nil, 0)

	if f.Limit != DefaultPageSize {
		t.Errorf("expected limit %d, got %d", DefaultPageSize, f.Limit)
	}
	if f.Page != 1 || f.Skip != 0 {
		t.Errorf("expected page 1 skip 0, got page %d skip %d", f.Page, f.Skip)
	}
	if f.Search != "" || f.Category != "" || f.Keyword != "" {
		t.Errorf("expected no text constraints, got %+v", f)
	}
	if f.IsFree != nil || f.IsFeatured != nil || f.IsNew != nil || f.IsAI != nil {
		t.Errorf("expected no flag constraints, got %+v", f)
	}
	if f.HasPriceBound() {
		t.Error("expected no price bound")
	}
}

func TestNewFilter_Flags(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool // whether a constraint is set
	}{
		{"true constrains", "true", true},
		{"false does not constrain", "false", false},
		{"uppercase is not true", "TRUE", false},
		{"garbage is ignored", "maybe", false},
		{"empty is ignored", "", false},
		{"one is not true", "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(map[string]string{
				ParamIsFree:     tt.value,
				ParamIsFeatured: tt.value,
				ParamIsNew:      tt.value,
				ParamIsAI:       tt.value,
			}, 10)

			for name, flag := range map[string]*bool{"isFree": f.IsFree, "isFeatured": f.IsFeatured, "isNew": f.IsNew, "isAI": f.IsAI} {
				if (flag != nil) != tt.want {
					t.Errorf("%s: constraint set = %v, want %v", name, flag != nil, tt.want)
				}
				if flag != nil && !*flag {
					t.Errorf("%s: constraint must be true when set", name)
				}
			}
		})
	}
}

func TestNewFilter_Prices(t *testing.T) {
	tests := []struct {
		name    string
		min     string
		max     string
		wantMin *float64
		wantMax *float64
	}{
		{"both valid", "10", "49.5", ptr(10), ptr(49.5)},
		{"min only", "5", "", ptr(5), nil},
		{"unparsable dropped", "cheap", "abc", nil, nil},
		{"nan dropped", "NaN", "Inf", nil, nil},
		{"whitespace trimmed", " 7 ", "", ptr(7), nil},
		{"zero is a bound", "0", "", ptr(0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(map[string]string{ParamMinPrice: tt.min, ParamMaxPrice: tt.max}, 10)
			if !equalPtr(f.MinPrice, tt.wantMin) {
				t.Errorf("MinPrice = %v, want %v", deref(f.MinPrice), deref(tt.wantMin))
			}
			if !equalPtr(f.MaxPrice, tt.wantMax) {
				t.Errorf("MaxPrice = %v, want %v", deref(f.MaxPrice), deref(tt.wantMax))
			}
		})
	}
}

func TestNewFilter_Pagination(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		limit    int
		wantPage int
		wantSkip int
	}{
		{"absent", "", 12, 1, 0},
		{"first", "1", 12, 1, 0},
		{"third", "3", 12, 3, 24},
		{"zero falls back", "0", 12, 1, 0},
		{"negative floored", "-4", 12, 1, 0},
		{"garbage falls back", "two", 12, 1, 0},
		{"fraction truncated", "2.7", 10, 2, 10},
		{"custom limit", "2", 5, 2, 5},
		{"huge page ignored", "1e300", 12, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(map[string]string{ParamPage: tt.page}, tt.limit)
			if f.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", f.Page, tt.wantPage)
			}
			if f.Skip != tt.wantSkip {
				t.Errorf("Skip = %d, want %d", f.Skip, tt.wantSkip)
			}
			if f.Limit != tt.limit {
				t.Errorf("Limit = %d, want %d", f.Limit, tt.limit)
			}
		})
	}
}

func TestNewFilter_Category(t *testing.T) {
	f := NewFilter(map[string]string{ParamCategory: "navigation-bars"}, 10)
	if f.Category != "Navigation Bars" {
		t.Errorf("expected 'Navigation Bars', got '%s'", f.Category)
	}
	if f.CategoryID != nil {
		t.Errorf("expected no category id, got %d", *f.CategoryID)
	}

	f = NewFilter(map[string]string{ParamCategory: "42"}, 10)
	if f.CategoryID == nil || *f.CategoryID != 42 {
		t.Errorf("expected category id 42, got %v", f.CategoryID)
	}
}

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{}
	q.Add(ParamSearch, "  button ")
	q.Add(ParamSearch, "ignored")
	q.Set(ParamKeyword, "react")
	q.Set(ParamIsAI, "true")
	q.Set(ParamPage, "2")

	f := FilterFromQuery(q, 8)
	if f.Search != "button" {
		t.Errorf("expected trimmed first search value, got '%s'", f.Search)
	}
	if f.Keyword != "react" {
		t.Errorf("expected keyword 'react', got '%s'", f.Keyword)
	}
	if f.IsAI == nil || !*f.IsAI {
		t.Error("expected isAI constraint")
	}
	if f.Skip != 8 {
		t.Errorf("expected skip 8, got %d", f.Skip)
	}
}

func ptr(v float64) *float64 { return &v }

func deref(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func equalPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
