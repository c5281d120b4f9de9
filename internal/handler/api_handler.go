package handler

import (
	"encoding/json"
	"net/http"
	"ui-market/internal/logger"
	"ui-market/internal/service"
)

// APIHandler serves the JSON endpoints used by the search box and the keyword
// filter.
type APIHandler struct {
	catalog service.CatalogServicer
	log     logger.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(cs service.CatalogServicer, log logger.Logger) *APIHandler {
	return &APIHandler{catalog: cs, log: log}
}

// suggestionsHandler returns up to five ranked suggestions for ?q=.
func (h *APIHandler) suggestionsHandler(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.catalog.GetAutocompleteSuggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.log.Error(err, "Failed to compute suggestions")
		writeJSONError(w, http.StatusInternalServerError, "failed to compute suggestions")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// keywordsHandler returns the keywords of ?category= or of the whole catalog.
func (h *APIHandler) keywordsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		keywords []string
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		keywords, err = h.catalog.GetKeywordsBySpecificCategory(r.Context(), category)
	} else {
		keywords, err = h.catalog.GetAllUniqueKeywords(r.Context())
	}
	if err != nil {
		h.log.Error(err, "Failed to load keywords")
		writeJSONError(w, http.StatusInternalServerError, "failed to load keywords")
		return
	}
	writeJSON(w, http.StatusOK, keywords)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
