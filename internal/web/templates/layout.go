package templates

import "github.com/a-h/templ"

const (
	bootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css"
	datastarJS   = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"
)

const pageStyle = `
body { background: linear-gradient(135deg,#f0f7ff,#fff6f9); font-family: Inter, system-ui, -apple-system, 'Segoe UI', Roboto, Arial; }
.header { background:#0b5ed7; color:white; padding:14px; border-radius:10px; margin-top:12px; margin-bottom:18px; text-align:center; }
.kpi-card { border-radius:12px; box-shadow:0 6px 18px rgba(10,10,20,0.06); height:140px; display:flex; flex-direction:column; justify-content:center; align-items:center; color:white; }
.kpi-title { font-size:0.9rem; opacity:0.95; }
.kpi-value { font-size:1.9rem; font-weight:700; margin-top:6px; }
.download-btn { margin-top:8px; font-size:12px; background:rgba(255,255,255,0.18); border:none; color:white; padding:6px 8px; border-radius:8px; }
.download-btn:hover { background:rgba(255,255,255,0.28); }
.filter-row { margin-bottom:18px; }
table { font-size:0.85rem; }
`

// Page wraps body in the HTML document shell.
func Page(title string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title>`)
		h.raw(`<link rel="stylesheet"`)
		h.attr("href", bootstrapCSS)
		h.raw(`><script type="module"`)
		h.attr("src", datastarJS)
		h.raw(`></script><style>`)
		h.raw(pageStyle)
		h.raw(`</style></head><body><div class="container">`)
		h.raw(`<div class="header"><h4 class="mb-0">`)
		h.text(title)
		h.raw(`</h4></div>`)
		h.component(body)
		h.raw(`</div></body></html>`)
	})
}
