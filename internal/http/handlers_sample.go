package http

import (
	"net/http"

	"khata/internal/importer"
)

// handleSampleCSV serves a one-row example file in the expected format.
func (s *Server) handleSampleCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sample.csv"`)
	_, _ = w.Write([]byte(importer.SampleCSV()))
}
