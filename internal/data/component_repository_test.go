//go:build integration

package data_test

import (
	"context"
	"strconv"
	"testing"
	"time"
	"ui-market/internal/catalog"
	"ui-market/internal/data"
	"ui-market/internal/data/datatest"

	"github.com/jmoiron/sqlx"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// seedCatalog stores a small catalog and returns it in insertion order.
func seedCatalog(t *testing.T, db *sqlx.DB) []*data.Component {
	t.Helper()
	navID := datatest.InsertCategory(t, db, "Navigation Bars", "navigation-bars")
	footerID := datatest.InsertCategory(t, db, "Footers", "footers")
	buttonID := datatest.InsertCategory(t, db, "Buttons", "buttons")

	components := []*data.Component{
		{Name: "Navbar", Slug: "navbar", Description: "Classic top bar", Price: datatest.Price(19), IsFeatured: true, CategoryID: navID, CreatedAt: baseTime.Add(1 * time.Hour), Keywords: []string{"react", "Tailwind"}},
		{Name: "Navigation Drawer", Slug: "navigation-drawer", Description: "Side drawer", Price: datatest.Price(29), IsNew: true, CategoryID: navID, CreatedAt: baseTime.Add(2 * time.Hour), Keywords: []string{"react"}},
		{Name: "Simple Footer", Slug: "simple-footer", Description: "Links at the bottom", IsFree: true, CategoryID: footerID, CreatedAt: baseTime.Add(3 * time.Hour), Keywords: []string{"html"}},
		{Name: "AI Chat Button", Slug: "ai-chat-button", Description: "Opens a 100% smart assistant", Price: datatest.Price(9.5), IsAI: true, IsNew: true, CategoryID: buttonID, CreatedAt: baseTime.Add(4 * time.Hour), Keywords: []string{"ai", "react"}},
		{Name: "Ghost Button", Slug: "ghost-button", Description: "Outlined button", IsFree: true, CategoryID: buttonID, CreatedAt: baseTime.Add(4 * time.Hour), Keywords: []string{"tailwind"}},
		{Name: "Mega Footer", Slug: "mega-footer", Description: "Footer with columns", Price: datatest.Price(49), IsFeatured: true, CategoryID: footerID, CreatedAt: baseTime.Add(5 * time.Hour), Keywords: []string{}},
	}
	for _, c := range components {
		datatest.InsertComponent(t, db, c)
	}
	return components
}

// filterFor pins down c's own attributes; any listing run with it must include c.
func filterFor(c *data.Component, limit int) catalog.Filter {
	params := map[string]string{
		catalog.ParamSearch:   c.Name,
		catalog.ParamCategory: strconv.FormatInt(c.CategoryID, 10),
	}
	if len(c.Keywords) > 0 {
		params[catalog.ParamKeyword] = c.Keywords[0]
	}
	if c.IsFree {
		params[catalog.ParamIsFree] = "true"
	}
	if c.IsFeatured {
		params[catalog.ParamIsFeatured] = "true"
	}
	if c.IsNew {
		params[catalog.ParamIsNew] = "true"
	}
	if c.IsAI {
		params[catalog.ParamIsAI] = "true"
	}
	if c.Price != nil {
		p := strconv.FormatFloat(*c.Price, 'f', -1, 64)
		params[catalog.ParamMinPrice] = p
		params[catalog.ParamMaxPrice] = p
	}
	return catalog.NewFilter(params, limit)
}

func names(components []*data.Component) []string {
	out := make([]string, len(components))
	for i, c := range components {
		out[i] = c.Name
	}
	return out
}

func TestFindPage_OrderingAndCounts(t *testing.T) {
	db := datatest.NewDB(t)
	seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)

	page, err := repo.FindPage(context.Background(), catalog.NewFilter(nil, 10))
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}

	if page.Total != 6 || page.Matched != 6 {
		t.Errorf("expected total 6 matched 6, got total %d matched %d", page.Total, page.Matched)
	}
	// Newest first; the two components created at the same instant fall back to id order.
	want := []string{"Mega Footer", "AI Chat Button", "Ghost Button", "Simple Footer", "Navigation Drawer", "Navbar"}
	got := names(page.Components)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if page.Components[1].CategoryName != "Buttons" {
		t.Errorf("expected joined category name 'Buttons', got '%s'", page.Components[1].CategoryName)
	}
	if len(page.Components[1].Keywords) != 2 {
		t.Errorf("expected 2 keywords loaded, got %v", page.Components[1].Keywords)
	}
}

func TestFindPage_Windowing(t *testing.T) {
	db := datatest.NewDB(t)
	seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)
	ctx := context.Background()

	tests := []struct {
		name      string
		page      string
		limit     int
		wantItems int
	}{
		{"first page", "1", 4, 4},
		{"partial last page", "2", 4, 2},
		{"beyond the end", "3", 4, 0},
		{"far beyond the end", "99", 4, 0},
		{"exact fit", "2", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := catalog.NewFilter(map[string]string{catalog.ParamPage: tt.page}, tt.limit)
			page, err := repo.FindPage(ctx, f)
			if err != nil {
				t.Fatalf("FindPage failed: %v", err)
			}
			if len(page.Components) != tt.wantItems {
				t.Errorf("expected %d items, got %d", tt.wantItems, len(page.Components))
			}
			if len(page.Components) > f.Limit {
				t.Errorf("page of %d exceeds limit %d", len(page.Components), f.Limit)
			}
			if page.Matched != 6 {
				t.Errorf("matched count must ignore the window, got %d", page.Matched)
			}
			if page.Components == nil {
				t.Error("expected an empty slice rather than nil")
			}
		})
	}
}

func TestFindPage_ResultsSatisfyFilter(t *testing.T) {
	db := datatest.NewDB(t)
	seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)
	ctx := context.Background()

	filters := []map[string]string{
		{catalog.ParamSearch: "nav"},
		{catalog.ParamSearch: "FOOTER"},
		{catalog.ParamSearch: "100%"},
		{catalog.ParamSearch: "_"},
		{catalog.ParamCategory: "navigation-bars"},
		{catalog.ParamCategory: "BUTTONS"},
		{catalog.ParamKeyword: "react"},
		{catalog.ParamKeyword: "Tailwind"},
		{catalog.ParamIsFree: "true"},
		{catalog.ParamIsNew: "true", catalog.ParamKeyword: "react"},
		{catalog.ParamMinPrice: "10"},
		{catalog.ParamMaxPrice: "20"},
		{catalog.ParamMinPrice: "10", catalog.ParamMaxPrice: "30", catalog.ParamCategory: "navigation-bars"},
		{catalog.ParamIsFree: "maybe"},
	}

	all, err := repo.FindPage(ctx, catalog.NewFilter(nil, 100))
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}

	for _, params := range filters {
		f := catalog.NewFilter(params, 100)
		page, err := repo.FindPage(ctx, f)
		if err != nil {
			t.Fatalf("FindPage(%v) failed: %v", params, err)
		}
		for _, c := range page.Components {
			if !data.Matches(f, c) {
				t.Errorf("filter %v returned non-matching component %s", params, c.Name)
			}
		}
		// The SQL predicate and the in-memory one must select the same set.
		want := 0
		for _, c := range all.Components {
			if data.Matches(f, c) {
				want++
			}
		}
		if page.Matched != want || len(page.Components) != want {
			t.Errorf("filter %v: expected %d matches, got matched=%d items=%d", params, want, page.Matched, len(page.Components))
		}
	}
}

func TestFindPage_NonASCIIAgreesWithMatches(t *testing.T) {
	db := datatest.NewDB(t)
	cardsID := datatest.InsertCategory(t, db, "Cartes Élégantes", "cartes-elegantes")
	datatest.InsertComponent(t, db, &data.Component{Name: "Élégant Card", Slug: "elegant-card", Description: "Über modal", IsFree: true, CategoryID: cardsID, CreatedAt: baseTime})
	datatest.InsertComponent(t, db, &data.Component{Name: "Plain Card", Slug: "plain-card", Description: "Nothing fancy", IsFree: true, CategoryID: cardsID, CreatedAt: baseTime.Add(time.Hour)})
	repo := data.NewSQLComponentRepository(db)
	ctx := context.Background()

	all, err := repo.FindPage(ctx, catalog.NewFilter(nil, 100))
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}

	for _, params := range []map[string]string{
		{catalog.ParamSearch: "élé"},
		{catalog.ParamSearch: "Élé"},
		{catalog.ParamSearch: "ÉLÉGANT"},
		{catalog.ParamSearch: "card"},
		{catalog.ParamSearch: "über"},
		{catalog.ParamSearch: "Über"},
		{catalog.ParamCategory: "cartes-élégantes"},
		{catalog.ParamCategory: "Cartes ÉLÉGANTES"},
	} {
		f := catalog.NewFilter(params, 100)
		page, err := repo.FindPage(ctx, f)
		if err != nil {
			t.Fatalf("FindPage(%v) failed: %v", params, err)
		}
		want := 0
		for _, c := range all.Components {
			if data.Matches(f, c) {
				want++
			}
		}
		if page.Matched != want {
			t.Errorf("filter %v: Matches selects %d, SQL selects %d", params, want, page.Matched)
		}
	}
}

func TestFindPage_SpecificFilters(t *testing.T) {
	db := datatest.NewDB(t)
	seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)
	ctx := context.Background()

	tests := []struct {
		name   string
		params map[string]string
		want   []string
	}{
		{"min price excludes null prices", map[string]string{"minPrice": "10"}, []string{"Mega Footer", "Navigation Drawer", "Navbar"}},
		{"keyword is case-sensitive", map[string]string{"keyword": "Tailwind"}, []string{"Navbar"}},
		{"literal percent in search", map[string]string{"search": "100%"}, []string{"AI Chat Button"}},
		{"category from slug", map[string]string{"category": "navigation-bars"}, []string{"Navigation Drawer", "Navbar"}},
		{"garbage flag means no constraint", map[string]string{"isFree": "maybe", "category": "footers"}, []string{"Mega Footer", "Simple Footer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.FindPage(ctx, catalog.NewFilter(tt.params, 10))
			if err != nil {
				t.Fatalf("FindPage failed: %v", err)
			}
			got := names(page.Components)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestFindPage_RoundTrip(t *testing.T) {
	db := datatest.NewDB(t)
	components := seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)
	ctx := context.Background()

	for _, c := range components {
		page, err := repo.FindPage(ctx, filterFor(c, 10))
		if err != nil {
			t.Fatalf("FindPage failed: %v", err)
		}
		found := false
		for _, got := range page.Components {
			if got.ID == c.ID {
				found = true
			}
		}
		if !found {
			t.Errorf("filter built from %s did not return it (got %v)", c.Name, names(page.Components))
		}
	}
}

func TestFindPage_Idempotent(t *testing.T) {
	db := datatest.NewDB(t)
	seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)
	ctx := context.Background()
	f := catalog.NewFilter(map[string]string{catalog.ParamKeyword: "react"}, 2)

	first, err := repo.FindPage(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.FindPage(ctx, f)
	if err != nil {
		t.Fatal(err)
	}

	if first.Matched != second.Matched {
		t.Errorf("matched drifted: %d vs %d", first.Matched, second.Matched)
	}
	a, b := names(first.Components), names(second.Components)
	if len(a) != len(b) {
		t.Fatalf("page sizes differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("ordering differs: %v vs %v", a, b)
		}
	}
}

func TestFindPage_CancelledContext(t *testing.T) {
	db := datatest.NewDB(t)
	seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.FindPage(ctx, catalog.NewFilter(nil, 10)); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestComponentRepository_GetBySlug(t *testing.T) {
	db := datatest.NewDB(t)
	seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)
	ctx := context.Background()

	c, err := repo.GetBySlug(ctx, "navbar")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if c == nil {
		t.Fatal("expected to find component, but got nil")
	}
	if c.Name != "Navbar" || c.CategoryName != "Navigation Bars" {
		t.Errorf("unexpected component: %+v", c)
	}
	if c.Price == nil || *c.Price != 19 {
		t.Errorf("expected price 19, got %v", c.Price)
	}
	if len(c.Keywords) != 2 || c.Keywords[0] != "Tailwind" || c.Keywords[1] != "react" {
		t.Errorf("expected sorted keywords [Tailwind react], got %v", c.Keywords)
	}

	missing, err := repo.GetBySlug(ctx, "does-not-exist")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil, but found component: %v", missing)
	}
}

func TestComponentRepository_SearchNames(t *testing.T) {
	db := datatest.NewDB(t)
	seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)

	got, err := repo.SearchNames(context.Background(), "NAV")
	if err != nil {
		t.Fatalf("SearchNames failed: %v", err)
	}
	if len(got) != 2 || got[0] != "Navbar" || got[1] != "Navigation Drawer" {
		t.Errorf("expected [Navbar Navigation Drawer], got %v", got)
	}
}

func TestComponentRepository_GetAll(t *testing.T) {
	db := datatest.NewDB(t)
	seedCatalog(t, db)
	repo := data.NewSQLComponentRepository(db)

	all, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("expected 6 components, got %d", len(all))
	}
	if all[0].Name != "Mega Footer" {
		t.Errorf("expected newest first, got %s", all[0].Name)
	}
}
