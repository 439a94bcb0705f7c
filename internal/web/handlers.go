package web

import (
	"net/http"

	"github.com/JonMunkholm/fielddash/internal/spreadsheet"
	"github.com/JonMunkholm/fielddash/internal/web/templates"
)

// handleDashboard renders the upload form until a table is loaded, then the
// dashboard. Query parameters state, district and type preselect a filter.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !s.service.HasData() {
		renderPage(w, r, http.StatusOK, templates.UploadPage(spreadsheet.Extensions, nil))
		return
	}

	view, err := s.service.ComputeView(filterFromValues(r.URL.Query()))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	renderPage(w, r, http.StatusOK, templates.Dashboard(view, spreadsheet.Extensions))
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Loaded bool   `json:"loaded"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{Status: "ok", Loaded: s.service.HasData()})
}
