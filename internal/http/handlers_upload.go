package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"khata/internal/importer"
)

// handleUpload accepts a CSV file under the "file" multipart field and
// swaps the session dataset. Responses are HTMX partials.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		slog.WarnContext(r.Context(), "Upload form parse error", "error", err)
		BadRequestError("Upload too large or malformed").Write(w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequestError("Missing file field").Write(w)
		return
	}
	defer file.Close()

	n, err := s.svc.Upload(r.Context(), file)
	if err != nil {
		if errors.Is(err, importer.ErrFormat) {
			slog.WarnContext(r.Context(), "Rejected upload",
				"filename", header.Filename, "error", err)
			UnprocessableEntityError("This file does not look like transaction data").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Upload failed",
			"filename", header.Filename, "error", err)
		InternalServerError("Could not load the file").Write(w)
		return
	}

	// Every cached dashboard describes the previous dataset now.
	s.dashCache.Clear()

	slog.InfoContext(r.Context(), "Dataset replaced",
		"filename", header.Filename, "records", n)

	NewHTMXResponse().
		TriggerDatasetUploaded(n).
		BodyHTML(fmt.Sprintf(`<div class="success">Loaded %d transactions</div>`, n)).
		Write(w)
}
