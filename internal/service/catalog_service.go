package service

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"time"
	"ui-market/internal/catalog"
	"ui-market/internal/data"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// ComponentRepository defines the read operations on components.
type ComponentRepository interface {
	FindPage(ctx context.Context, f catalog.Filter) (*data.ComponentPage, error)
	GetBySlug(ctx context.Context, slug string) (*data.Component, error)
	GetAll(ctx context.Context) ([]*data.Component, error)
	SearchNames(ctx context.Context, query string) ([]string, error)
}

// CategoryRepository defines the read operations on categories.
type CategoryRepository interface {
	FindByName(ctx context.Context, name string) (*data.Category, error)
	GetAll(ctx context.Context) ([]*data.Category, error)
	SearchByName(ctx context.Context, query string) ([]string, error)
}

// KeywordRepository defines the read operations on component keywords.
type KeywordRepository interface {
	GetAll(ctx context.Context) ([]string, error)
	GetByCategoryName(ctx context.Context, name string) ([]string, error)
	Search(ctx context.Context, query string) ([]string, error)
}

// CatalogServicer defines the storefront's catalog operations.
type CatalogServicer interface {
	GetComponents(ctx context.Context, f catalog.Filter) (*ComponentsResult, error)
	GetAutocompleteSuggestions(ctx context.Context, query string) ([]catalog.Suggestion, error)
	GetKeywordsBySpecificCategory(ctx context.Context, category string) ([]string, error)
	GetAllUniqueKeywords(ctx context.Context) ([]string, error)
	GetComponentBySlug(ctx context.Context, slug string) (*data.Component, error)
	GetCategories(ctx context.Context) ([]*data.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*data.Category, error)
	SitemapEntries(ctx context.Context) ([]SitemapEntry, error)
}

// ComponentsResult is one page of a filtered listing.
type ComponentsResult struct {
	Components      []*data.Component
	ComponentsCount int // components matching the filter
	TotalComponents int // components in the whole catalog
	Page            int
	TotalPages      int
}

// SitemapEntry is one public URL path with its last modification time.
type SitemapEntry struct {
	Path    string
	LastMod time.Time
}

// CatalogService provides the listing, search and detail logic of the storefront.
type CatalogService struct {
	components ComponentRepository
	categories CategoryRepository
	keywords   KeywordRepository
	markdown   goldmark.Markdown
	sanitizer  *bluemonday.Policy
}

// NewCatalogService creates a new CatalogService with the given repositories.
func NewCatalogService(components ComponentRepository, categories CategoryRepository, keywords KeywordRepository) *CatalogService {
	return &CatalogService{
		components: components,
		categories: categories,
		keywords:   keywords,
		markdown:   goldmark.New(),
		// Component descriptions are authored by sellers, so treat them as
		// user-generated content.
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// GetComponents returns the page of components selected by f.
func (s *CatalogService) GetComponents(ctx context.Context, f catalog.Filter) (*ComponentsResult, error) {
	page, err := s.components.FindPage(ctx, f)
	if err != nil {
		return nil, dataSourceError("get components", err)
	}

	totalPages := 0
	if f.Limit > 0 {
		totalPages = (page.Matched + f.Limit - 1) / f.Limit
	}
	return &ComponentsResult{
		Components:      page.Components,
		ComponentsCount: page.Matched,
		TotalComponents: page.Total,
		Page:            f.Page,
		TotalPages:      totalPages,
	}, nil
}

// GetAutocompleteSuggestions ranks category names, component names and
// keywords containing query. A blank query yields no suggestions and no store
// round trip.
func (s *CatalogService) GetAutocompleteSuggestions(ctx context.Context, query string) ([]catalog.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []catalog.Suggestion{}, nil
	}

	categoryNames, err := s.categories.SearchByName(ctx, query)
	if err != nil {
		return nil, dataSourceError("autocomplete", err)
	}
	componentNames, err := s.components.SearchNames(ctx, query)
	if err != nil {
		return nil, dataSourceError("autocomplete", err)
	}
	keywords, err := s.keywords.Search(ctx, query)
	if err != nil {
		return nil, dataSourceError("autocomplete", err)
	}

	candidates := make([]string, 0, len(categoryNames)+len(componentNames)+len(keywords))
	candidates = append(candidates, categoryNames...)
	candidates = append(candidates, componentNames...)
	candidates = append(candidates, keywords...)
	return catalog.RankSuggestions(candidates, query, catalog.MaxSuggestions), nil
}

// GetKeywordsBySpecificCategory lists the keywords used in one category. The
// category may be given as a slug or as its display name.
func (s *CatalogService) GetKeywordsBySpecificCategory(ctx context.Context, category string) ([]string, error) {
	name := catalog.FormatCategoryName(strings.TrimSpace(category))
	if name == "" {
		return []string{}, nil
	}
	keywords, err := s.keywords.GetByCategoryName(ctx, name)
	if err != nil {
		return nil, dataSourceError("get category keywords", err)
	}
	return keywords, nil
}

// GetAllUniqueKeywords lists every keyword in the catalog once.
func (s *CatalogService) GetAllUniqueKeywords(ctx context.Context) ([]string, error) {
	keywords, err := s.keywords.GetAll(ctx)
	if err != nil {
		return nil, dataSourceError("get keywords", err)
	}
	return keywords, nil
}

// GetComponentBySlug retrieves a single component and renders its markdown
// description into sanitized HTML.
func (s *CatalogService) GetComponentBySlug(ctx context.Context, slug string) (*data.Component, error) {
	component, err := s.components.GetBySlug(ctx, slug)
	if err != nil {
		return nil, dataSourceError("get component", err)
	}
	if component == nil {
		return nil, ErrNotFound
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(component.Description), &buf); err != nil {
		// Fall back to the escaped source rather than failing the page.
		component.HTMLContent = template.HTML(template.HTMLEscapeString(component.Description))
		return component, nil
	}
	component.HTMLContent = template.HTML(s.sanitizer.SanitizeBytes(buf.Bytes()))
	return component, nil
}

// GetCategories lists all categories by name.
func (s *CatalogService) GetCategories(ctx context.Context) ([]*data.Category, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, dataSourceError("get categories", err)
	}
	return categories, nil
}

// GetCategoryBySlug resolves a listing URL segment to its category. The slug
// is matched through its display name, the same way the listing filter
// matches it. ErrNotFound means no such category.
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*data.Category, error) {
	name := catalog.FormatCategoryName(strings.TrimSpace(slug))
	if name == "" {
		return nil, ErrNotFound
	}
	category, err := s.categories.FindByName(ctx, name)
	if err != nil {
		return nil, dataSourceError("get category", err)
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// SitemapEntries lists every public catalog page: one per category listing
// and one per component. A category's last modification is its newest
// component.
func (s *CatalogService) SitemapEntries(ctx context.Context) ([]SitemapEntry, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, dataSourceError("sitemap", err)
	}
	components, err := s.components.GetAll(ctx)
	if err != nil {
		return nil, dataSourceError("sitemap", err)
	}

	newest := make(map[int64]time.Time, len(categories))
	for _, c := range components {
		if c.CreatedAt.After(newest[c.CategoryID]) {
			newest[c.CategoryID] = c.CreatedAt
		}
	}

	entries := make([]SitemapEntry, 0, len(categories)+len(components))
	for _, cat := range categories {
		entries = append(entries, SitemapEntry{Path: "/components/" + cat.Slug, LastMod: newest[cat.ID]})
	}
	for _, c := range components {
		entries = append(entries, SitemapEntry{Path: "/component/" + c.Slug, LastMod: c.CreatedAt})
	}
	return entries, nil
}
