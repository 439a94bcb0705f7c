package templates

import (
	"strings"

	"github.com/JonMunkholm/fielddash/internal/core"
	"github.com/a-h/templ"
)

// Title is the page and header title.
const Title = "Field Team Retailer Dashboard"

// UploadForm is the spreadsheet upload form. accept lists the file
// extensions offered by the browser's picker.
func UploadForm(accept []string, compact bool) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="card p-4 mb-3"><form action="/upload" method="post" enctype="multipart/form-data" class="row g-3">`)
		h.raw(`<div class="col-md-9"><input type="file" name="file" class="form-control" required`)
		h.attr("accept", strings.Join(accept, ","))
		h.raw(`></div><div class="col-md-3 text-end"><button class="btn btn-primary w-100">`)
		if compact {
			h.text("Replace Data")
		} else {
			h.text("Upload & Show Dashboard")
		}
		h.raw(`</button></div>`)
		if !compact {
			h.raw(`<div class="col-12"><small class="text-muted">Expected columns: `)
			h.text(strings.Join(core.Columns, ", "))
			h.raw(`</small></div>`)
		}
		h.raw(`</form></div>`)
	})
}

// ErrorAlert renders a user-facing error with its support code and, for
// unreadable spreadsheets, the parser's own message.
func ErrorAlert(msg core.UserMessage) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="alert alert-danger" role="alert"><strong>`)
		h.text(msg.Message)
		h.raw(`</strong>`)
		if msg.Detail != "" {
			h.raw(`<div class="small"><code>`)
			h.text(msg.Detail)
			h.raw(`</code></div>`)
		}
		if msg.Action != "" {
			h.raw(`<div>`)
			h.text(msg.Action)
			h.raw(`</div>`)
		}
		h.raw(`<small class="text-muted">Code: `)
		h.text(msg.Code)
		h.raw(`</small></div>`)
	})
}

// UploadPage is the landing page shown before any data is loaded. errMsg is
// shown above the form when the previous upload failed.
func UploadPage(accept []string, errMsg *core.UserMessage) templ.Component {
	return Page(Title, component(func(h *htmlWriter) {
		if errMsg != nil {
			h.component(ErrorAlert(*errMsg))
		}
		h.component(UploadForm(accept, false))
	}))
}
