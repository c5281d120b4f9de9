package data

import (
	"strings"
	"ui-market/internal/catalog"
)

// likeEscape is the ESCAPE character used in LIKE patterns. A backslash would
// need different quoting in MySQL and SQLite.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// predicate is a SQL boolean condition over the components table (alias c,
// joined to categories as cat) with its bound arguments.
type predicate struct {
	where string
	args  []interface{}
}

// buildPredicate composes every constraint set on f into one AND condition.
// An unconstrained filter yields "1=1".
func buildPredicate(f catalog.Filter) predicate {
	var conds []string
	var args []interface{}

	if f.Search != "" {
		pattern := containsPattern(f.Search)
		conds = append(conds, "(LOWER(c.name) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(c.description) LIKE ? ESCAPE '"+likeEscape+"')")
		args = append(args, pattern, pattern)
	}
	if f.Category != "" || f.CategoryID != nil {
		var alt []string
		if f.Category != "" {
			alt = append(alt, "LOWER(cat.name) = LOWER(?)")
			args = append(args, f.Category)
		}
		if f.CategoryID != nil {
			alt = append(alt, "c.category_id = ?")
			args = append(args, *f.CategoryID)
		}
		conds = append(conds, "("+strings.Join(alt, " OR ")+")")
	}
	if f.Keyword != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM component_keywords k WHERE k.component_id = c.id AND k.keyword = ?)")
		args = append(args, f.Keyword)
	}

	flags := []struct {
		column string
		value  *bool
	}{
		{"c.is_free", f.IsFree},
		{"c.is_featured", f.IsFeatured},
		{"c.is_new", f.IsNew},
		{"c.is_ai", f.IsAI},
	}
	for _, flag := range flags {
		if flag.value != nil {
			conds = append(conds, flag.column+" = ?")
			args = append(args, *flag.value)
		}
	}

	if f.HasPriceBound() {
		conds = append(conds, "c.price IS NOT NULL")
		if f.MinPrice != nil {
			conds = append(conds, "c.price >= ?")
			args = append(args, *f.MinPrice)
		}
		if f.MaxPrice != nil {
			conds = append(conds, "c.price <= ?")
			args = append(args, *f.MaxPrice)
		}
	}

	if len(conds) == 0 {
		return predicate{where: "1=1"}
	}
	return predicate{where: strings.Join(conds, " AND "), args: args}
}

// containsPattern case-folds s and turns it into a LIKE substring pattern with
// its own wildcards escaped.
func containsPattern(s string) string {
	return "%" + likeReplacer.Replace(foldASCII(s)) + "%"
}

// foldASCII lowercases A-Z only. It is the folding SQLite applies in LOWER()
// and in LIKE, so non-ASCII letters compare exactly.
func foldASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// Matches evaluates the same predicate as buildPredicate against a component
// already in memory. The component's CategoryName and Keywords must be loaded.
// Text comparisons fold ASCII letters only, as SQLite does. A MySQL column
// with an accent-insensitive collation can match more non-ASCII text.
func Matches(f catalog.Filter, c *Component) bool {
	if f.Search != "" {
		q := foldASCII(f.Search)
		if !strings.Contains(foldASCII(c.Name), q) && !strings.Contains(foldASCII(c.Description), q) {
			return false
		}
	}
	if f.Category != "" || f.CategoryID != nil {
		byName := f.Category != "" && foldASCII(c.CategoryName) == foldASCII(f.Category)
		byID := f.CategoryID != nil && c.CategoryID == *f.CategoryID
		if !byName && !byID {
			return false
		}
	}
	if f.Keyword != "" && !hasKeyword(c.Keywords, f.Keyword) {
		return false
	}
	if !flagMatches(f.IsFree, c.IsFree) || !flagMatches(f.IsFeatured, c.IsFeatured) ||
		!flagMatches(f.IsNew, c.IsNew) || !flagMatches(f.IsAI, c.IsAI) {
		return false
	}
	if f.HasPriceBound() {
		if c.Price == nil {
			return false
		}
		if f.MinPrice != nil && *c.Price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && *c.Price > *f.MaxPrice {
			return false
		}
	}
	return true
}

func flagMatches(want *bool, got bool) bool {
	return want == nil || *want == got
}

func hasKeyword(keywords []string, keyword string) bool {
	for _, k := range keywords {
		if k == keyword {
			return true
		}
	}
	return false
}
