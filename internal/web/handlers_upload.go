package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/fielddash/internal/core"
	"github.com/JonMunkholm/fielddash/internal/logging"
	"github.com/JonMunkholm/fielddash/internal/spreadsheet"
	"github.com/JonMunkholm/fielddash/internal/web/templates"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files.
const multipartMemory = 32 << 20

// UploadResponse is returned to JSON clients after a successful upload.
type UploadResponse struct {
	TableID  string    `json:"tableId"`
	FileName string    `json:"fileName"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loadedAt"`
}

// handleUpload replaces the current table with the uploaded spreadsheet.
// Browsers are redirected to the dashboard; JSON clients get a summary.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			err = fmt.Errorf("file too large: %w", err)
		} else {
			err = fmt.Errorf("%w: %v", errNoFile, err)
		}
		s.uploadFailed(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		s.uploadFailed(w, r, errNoFile)
		return
	}
	defer file.Close()

	logger := logging.WithFields(r.Context(), "file", header.Filename, "size", header.Size)
	logger.Info("upload received")

	ctx := withRequestMetadata(r.Context(), r)
	table, err := s.service.Upload(ctx, header.Filename, file)
	if err != nil {
		s.uploadFailed(w, r, err)
		return
	}

	logger.Info("upload complete", "table_id", table.ID, "rows", table.Len())

	if wantsJSON(r) {
		writeJSON(w, UploadResponse{
			TableID:  table.ID,
			FileName: table.FileName,
			Rows:     table.Len(),
			LoadedAt: table.LoadedAt,
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// uploadFailed shows the upload form again with the error, or a JSON error
// for API clients. The current table is unchanged.
func (s *Server) uploadFailed(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if wantsJSON(r) {
		s.respondError(w, r, err, status)
		return
	}

	msg := core.MapError(err)
	logging.FromContext(r.Context()).Warn("upload failed",
		"status", status,
		"code", msg.Code,
		"error", err,
	)
	renderPage(w, r, status, templates.UploadPage(spreadsheet.Extensions, &msg))
}

// handleListUploads returns recent upload events, newest first.
func (s *Server) handleListUploads(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 20)

	events, err := s.service.RecentUploads(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []core.UploadEvent{}
	}
	writeJSON(w, map[string]any{"uploads": events})
}

// handleUploadQueueStatus reports upload slot usage.
func (s *Server) handleUploadQueueStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.UploadLimiterStatus())
}
