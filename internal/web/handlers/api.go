package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/keyword-mapper/internal/match"
	"github.com/keyword-mapper/internal/report"
)

// APIHandler serves the mapping results
type APIHandler struct {
	store   *match.Store
	rows    []report.Row
	summary report.Summary
}

// NewAPIHandler precomputes the rows and summary of a store.
func NewAPIHandler(store *match.Store) *APIHandler {
	return &APIHandler{
		store:   store,
		rows:    report.Rows(store),
		summary: report.Summarize(store),
	}
}

// MappingsResponse is the body of GET /api/mappings.
type MappingsResponse struct {
	Total    int          `json:"total"`
	Mappings []report.Row `json:"mappings"`
}

// URLResponse lists the keywords mapped to one URL.
type URLResponse struct {
	URL      string   `json:"url"`
	URLName  string   `json:"url_name"`
	Keywords []string `json:"keywords"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health reports liveness
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"keywords": h.store.Lines(),
	})
}

// GetStats returns the summary statistics
func (h *APIHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.summary)
}

// ListMappings returns one row per keyword line, optionally filtered by quality.
func (h *APIHandler) ListMappings(w http.ResponseWriter, r *http.Request) {
	quality := strings.TrimSpace(r.URL.Query().Get("quality"))

	rows := make([]report.Row, 0, len(h.rows))
	for _, row := range h.rows {
		if quality != "" && !strings.EqualFold(string(row.Quality), quality) {
			continue
		}
		rows = append(rows, row)
	}

	writeJSON(w, http.StatusOK, MappingsResponse{Total: len(rows), Mappings: rows})
}

// GetMapping returns the row of one keyword.
func (h *APIHandler) GetMapping(w http.ResponseWriter, r *http.Request) {
	keyword := mux.Vars(r)["keyword"]

	for _, row := range h.rows {
		if row.Keyword == keyword {
			writeJSON(w, http.StatusOK, row)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "keyword not found"})
}

// ListURLs returns every matched URL with the keywords that chose it.
func (h *APIHandler) ListURLs(w http.ResponseWriter, r *http.Request) {
	groups := h.store.URLGroups()
	urls := make([]URLResponse, 0, len(groups))
	for _, g := range groups {
		urls = append(urls, URLResponse{URL: g.URL, URLName: report.URLName(g.URL), Keywords: g.Keywords})
	}
	writeJSON(w, http.StatusOK, urls)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
