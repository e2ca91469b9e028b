package handlers

import (
	"fmt"
	"net/http"

	"github.com/keyword-mapper/internal/match"
	"github.com/keyword-mapper/internal/report"
)

// ExportHandler streams the results back as a CSV download
type ExportHandler struct {
	Store    *match.Store
	Filename string
}

// ExportCSV writes the result file.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.Filename))

	if err := report.Write(w, h.Store); err != nil {
		http.Error(w, "Export failed", http.StatusInternalServerError)
	}
}
