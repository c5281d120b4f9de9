package handler

import (
	"net/http"
	"ui-market/internal/catalog"
	"ui-market/internal/data"
	"ui-market/internal/logger"
	"ui-market/internal/middleware"
	"ui-market/internal/service"
	"ui-market/internal/view"

	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the storefront listing and detail pages.
type CatalogHandler struct {
	catalog  service.CatalogServicer
	view     *view.View
	log      logger.Logger
	pageSize int
}

// NewCatalogHandler creates a new CatalogHandler. A non-positive pageSize
// means catalog.DefaultPageSize.
func NewCatalogHandler(cs service.CatalogServicer, v *view.View, log logger.Logger, pageSize int) *CatalogHandler {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &CatalogHandler{catalog: cs, view: v, log: log, pageSize: pageSize}
}

// listHandler renders the filtered component listing.
func (h *CatalogHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderListing(w, r, nil)
}

// categoryHandler renders the listing scoped to the category in the path. An
// explicit category query parameter is overridden by the path. Unknown
// categories are a 404.
func (h *CatalogHandler) categoryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	category, err := h.catalog.GetCategoryBySlug(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		return serviceError(err, "Failed to load category")
	}
	return h.renderListing(w, r, category)
}

func (h *CatalogHandler) renderListing(w http.ResponseWriter, r *http.Request, category *data.Category) *middleware.AppError {
	q := r.URL.Query()
	categorySlug := ""
	if category != nil {
		categorySlug = category.Slug
		q.Set(catalog.ParamCategory, categorySlug)
	}
	f := catalog.FilterFromQuery(q, h.pageSize)

	result, err := h.catalog.GetComponents(r.Context(), f)
	if err != nil {
		return serviceError(err, "Failed to load components")
	}
	categories, err := h.catalog.GetCategories(r.Context())
	if err != nil {
		return serviceError(err, "Failed to load categories")
	}
	var keywords []string
	if categorySlug != "" {
		keywords, err = h.catalog.GetKeywordsBySpecificCategory(r.Context(), categorySlug)
	} else {
		keywords, err = h.catalog.GetAllUniqueKeywords(r.Context())
	}
	if err != nil {
		return serviceError(err, "Failed to load keywords")
	}

	h.log.Debug("Rendering component listing")
	vars := map[string]interface{}{
		"Result":       result,
		"Filter":       f,
		"Query":        r.URL.Query(),
		"Categories":   categories,
		"Category":     category,
		"CategorySlug": categorySlug,
		"Keywords":     keywords,
		"UserInfo":     middleware.GetUserInfo(r.Context()),
	}
	if err := h.view.Render(w, "components.html", vars); err != nil {
		return renderError(err, "component listing")
	}
	return nil
}

// detailHandler renders a single component.
func (h *CatalogHandler) detailHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")
	component, err := h.catalog.GetComponentBySlug(r.Context(), slug)
	if err != nil {
		return serviceError(err, "Failed to load component")
	}

	data := map[string]interface{}{
		"Component": component,
		"UserInfo":  middleware.GetUserInfo(r.Context()),
	}
	if err := h.view.Render(w, "component.html", data); err != nil {
		return renderError(err, "component page")
	}
	return nil
}
