package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/fielddash/internal/core"
	"github.com/JonMunkholm/fielddash/internal/logging"
	"github.com/JonMunkholm/fielddash/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// handleViewSSE recomputes the view for the client's filter signals and
// patches the counters, status cards and record table.
func (s *Server) handleViewSSE(w http.ResponseWriter, r *http.Request) {
	var signals templates.Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		s.respondError(w, r, fmt.Errorf("read signals: %w", err), http.StatusBadRequest)
		return
	}

	view, err := s.service.ComputeView(signals.Filter())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logger := logging.FromContext(r.Context())
	sse := datastar.NewSSE(w, r)

	patches := []templ.Component{
		templates.KPIs(view.Metrics),
		templates.Statuses(view),
		templates.Records(view.Records),
	}
	for _, c := range patches {
		html, err := templates.RenderString(r.Context(), c)
		if err != nil {
			logger.Error("render view patch", "error", err)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			logger.Warn("sse patch failed", "error", err)
			return
		}
	}
}

// handleAPIView returns the counters and filter options as JSON.
func (s *Server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.ComputeView(filterFromValues(r.URL.Query()))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, view)
}

// handleDownload exports the records for one status card. The form carries
// status, state, district and type.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, fmt.Errorf("parse form: %w", err), http.StatusBadRequest)
		return
	}
	s.export(w, r, filterFromValues(r.PostForm), r.PostForm.Get("status"))
}

// handleAPIExport is handleDownload driven by query parameters.
func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.export(w, r, filterFromValues(q), q.Get("status"))
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, f core.Filter, status string) {
	name, data, err := s.service.BuildExport(f, status)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(r.Context()).Info("export",
		"status", status,
		"state", f.State,
		"district", f.District,
		"type", f.RetailerType,
		"bytes", len(data),
	)
	writeCSVAttachment(w, name, data)
}
