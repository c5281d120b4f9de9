package handler

import (
	"io/fs"
	"net/http"
	"ui-market/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything the router mounts. AuthHandler may be nil when
// no OIDC provider is configured; the login routes are then not mounted.
type Handlers struct {
	Catalog *CatalogHandler
	API     *APIHandler
	SEO     *SeoHandler
	Auth    *AuthHandler
	Admin   *AdminHandler
}

// Middlewares groups the middleware the router needs from main.
type Middlewares struct {
	Session  middleware.SessionManager
	Identify func(http.Handler) http.Handler
	Authz    func(http.Handler) http.Handler
	Error    func(middleware.AppHandler) http.Handler
}

// NewRouter creates and configures a new chi router.
func NewRouter(h Handlers, mw Middlewares, static fs.FS) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	if static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}
	r.Get("/robots.txt", h.SEO.robotsHandler)
	r.Get("/sitemap.xml", h.SEO.sitemapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.NoCache)
		r.Get("/search/suggestions", h.API.suggestionsHandler)
		r.Get("/keywords", h.API.keywordsHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.Session.LoadAndSave)

		if h.Auth != nil {
			r.Get("/auth/login", h.Auth.handleLogin)
			r.Get("/auth/callback", h.Auth.handleCallback)
			r.Get("/auth/logout", h.Auth.handleLogout)
		}

		// Public storefront
		r.Group(func(r chi.Router) {
			r.Use(mw.Identify)

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/components", http.StatusFound)
			})
			r.Method(http.MethodGet, "/components", mw.Error(h.Catalog.listHandler))
			r.Method(http.MethodGet, "/components/{category}", mw.Error(h.Catalog.categoryHandler))
			r.Method(http.MethodGet, "/component/{slug}", mw.Error(h.Catalog.detailHandler))
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(mw.Authz)

			r.Method(http.MethodGet, "/admin/stats", mw.Error(h.Admin.statsHandler))
		})
	})

	return r
}
