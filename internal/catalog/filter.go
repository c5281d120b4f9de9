// Package catalog holds the request-side rules of the component catalog:
// turning raw listing parameters into a typed Filter, formatting category
// slugs, and ranking autocomplete suggestions. Nothing here touches the store.
package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is used when the caller does not supply a positive limit.
const DefaultPageSize = 12

// maxPage bounds the page number so the offset stays a sane int.
const maxPage = 1 << 20

// Parameter names accepted by NewFilter.
const (
	ParamSearch     = "search"
	ParamCategory   = "category"
	ParamKeyword    = "keyword"
	ParamIsFree     = "isFree"
	ParamIsFeatured = "isFeatured"
	ParamIsNew      = "isNew"
	ParamIsAI       = "isAI"
	ParamMinPrice   = "minPrice"
	ParamMaxPrice   = "maxPrice"
	ParamPage       = "page"
)

// Filter is the normalized set of listing constraints for one request.
// Zero values and nil pointers mean "no constraint".
type Filter struct {
	Search     string
	Category   string // formatted category name, see FormatCategoryName
	CategoryID *int64
	Keyword    string
	IsFree     *bool
	IsFeatured *bool
	IsNew      *bool
	IsAI       *bool
	MinPrice   *float64
	MaxPrice   *float64

	Page  int
	Skip  int
	Limit int
}

// HasPriceBound reports whether either price bound is set.
func (f Filter) HasPriceBound() bool {
	return f.MinPrice != nil || f.MaxPrice != nil
}

// NewFilter builds a Filter from optional string parameters. It never fails:
// values that cannot be parsed are dropped.
func NewFilter(params map[string]string, limit int) Filter {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	f := Filter{
		Search:     strings.TrimSpace(params[ParamSearch]),
		Keyword:    strings.TrimSpace(params[ParamKeyword]),
		IsFree:     parseFlag(params[ParamIsFree]),
		IsFeatured: parseFlag(params[ParamIsFeatured]),
		IsNew:      parseFlag(params[ParamIsNew]),
		IsAI:       parseFlag(params[ParamIsAI]),
		MinPrice:   parseNumber(params[ParamMinPrice]),
		MaxPrice:   parseNumber(params[ParamMaxPrice]),
		Limit:      limit,
	}

	if raw := strings.TrimSpace(params[ParamCategory]); raw != "" {
		f.Category = FormatCategoryName(raw)
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.CategoryID = &id
		}
	}

	// Page numbers below 1 collapse to the first page, so Skip never goes negative.
	f.Page = 1
	if p := parseNumber(params[ParamPage]); p != nil && *p >= 1 && *p <= maxPage {
		f.Page = int(*p)
	}
	f.Skip = (f.Page - 1) * f.Limit

	return f
}

// FilterFromQuery is NewFilter over URL query values; the first value of each
// key is used.
func FilterFromQuery(q url.Values, limit int) Filter {
	params := make(map[string]string, len(q))
	for key := range q {
		params[key] = q.Get(key)
	}
	return NewFilter(params, limit)
}

// parseFlag only constrains on the literal "true".
func parseFlag(s string) *bool {
	if s != "true" {
		return nil
	}
	v := true
	return &v
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
