package handler

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"
	"ui-market/internal/logger"
	"ui-market/internal/service"
)

const (
	sitemapDateFormat = "2006-01-02"
	sitemapCacheKey   = "sitemap.xml"
)

// Cacher is the part of the SQLite cache the SEO handlers use.
type Cacher interface {
	Remember(key string, ttl time.Duration, fn func() ([]byte, error)) ([]byte, error)
}

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	catalog service.CatalogServicer
	cache   Cacher
	baseURL string
	ttl     time.Duration
	log     logger.Logger
}

// NewSeoHandler creates a new SeoHandler. URLs in the sitemap and robots.txt
// are absolute, rooted at baseURL.
func NewSeoHandler(cs service.CatalogServicer, c Cacher, baseURL string, ttl time.Duration, log logger.Logger) *SeoHandler {
	return &SeoHandler{catalog: cs, cache: c, baseURL: baseURL, ttl: ttl, log: log}
}

// robotsHandler serves robots.txt pointing crawlers at the sitemap.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "Disallow: /admin/")
	fmt.Fprintln(w, "Disallow: /auth/")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.baseURL)
}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler serves sitemap.xml, rebuilding it at most once per TTL.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	build := func() ([]byte, error) { return h.buildSitemap(r) }

	var (
		doc []byte
		err error
	)
	if h.cache != nil {
		doc, err = h.cache.Remember(sitemapCacheKey, h.ttl, build)
	} else {
		doc, err = build()
	}
	if err != nil {
		h.log.Error(err, "Failed to build sitemap")
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write(doc)
}

func (h *SeoHandler) buildSitemap(r *http.Request) ([]byte, error) {
	entries, err := h.catalog.SitemapEntries(r.Context())
	if err != nil {
		return nil, err
	}

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(entries)+1),
	}
	sitemap.URLs = append(sitemap.URLs, sitemapURL{Loc: h.baseURL + "/components"})
	for _, e := range entries {
		u := sitemapURL{Loc: h.baseURL + e.Path}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.UTC().Format(sitemapDateFormat)
		}
		sitemap.URLs = append(sitemap.URLs, u)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return buf.Bytes(), nil
}
