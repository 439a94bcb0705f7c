package web

// handlers_common.go holds request parsing and response helpers shared by
// the handlers.

import (
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/fielddash/internal/core"
	"github.com/JonMunkholm/fielddash/internal/logging"
	"github.com/a-h/templ"
)

// parseIntParam parses a positive integer query parameter with a default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// filterFromValues reads the state, district and type fields. Values are
// used as given; matching is exact.
func filterFromValues(v url.Values) core.Filter {
	return core.Filter{
		State:        v.Get("state"),
		District:     v.Get("district"),
		RetailerType: v.Get("type"),
	}
}

// writeCSVAttachment sends data as a CSV download named name.
func writeCSVAttachment(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// renderPage writes an HTML component with the given status.
func renderPage(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, "error", err)
	}
}
