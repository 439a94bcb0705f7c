package templates

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/JonMunkholm/fielddash/internal/core"
	"github.com/a-h/templ"
)

// MaxTableRows caps the rendered record table. Exports are not capped.
const MaxTableRows = 1000

// Element ids patched by the live view.
const (
	KPIsID     = "kpis"
	StatusesID = "statuses"
	RecordsID  = "records"
)

// ViewEndpoint is fetched whenever a filter changes.
const ViewEndpoint = "/sse/view"

type statusCard struct {
	title  string
	status core.Status
	color  string
}

var statusCards = []statusCard{
	{"Approval Pending", core.StatusApprovalPending, "linear-gradient(90deg,#45aaf2,#2b83d6)"},
	{"Approval Rejected", core.StatusApprovalRejected, "linear-gradient(90deg,#ff6b6b,#e74c3c)"},
	{"On-Boarded", core.StatusOnBoarded, "linear-gradient(90deg,#56cc9d,#2ecc71)"},
	{"KYC Pending", core.StatusKYCPending, "linear-gradient(90deg,#f6b93b,#f7b731)"},
	{"Replacement Req.", core.StatusReplacementRequired, "linear-gradient(90deg,#9b59b6,#8e44ad)"},
	{"Others", core.StatusOthers, "linear-gradient(90deg,#95a5a6,#7f8c8d)"},
}

// Signals is the client-side filter state.
type Signals struct {
	State        string `json:"state"`
	District     string `json:"district"`
	RetailerType string `json:"retailerType"`
}

// Filter converts the signals to a core.Filter.
func (s Signals) Filter() core.Filter {
	return core.Filter{State: s.State, District: s.District, RetailerType: s.RetailerType}
}

// Dashboard is the full page for a loaded table.
func Dashboard(view core.View, accept []string) templ.Component {
	return Page(Title, component(func(h *htmlWriter) {
		signals, _ := json.Marshal(Signals{
			State:        view.Filter.State,
			District:     view.Filter.District,
			RetailerType: view.Filter.RetailerType,
		})

		h.raw(`<div`)
		h.attr("data-signals", string(signals))
		h.raw(`>`)
		h.component(UploadForm(accept, true))
		h.raw(`<p class="text-muted small">Showing `)
		h.text(view.FileName)
		h.raw(`</p>`)
		h.component(Filters(view.Options))
		h.component(KPIs(view.Metrics))
		h.component(Statuses(view))
		h.component(Records(view.Records))
		h.raw(`</div>`)
	}))
}

// Filters renders the three dropdowns and the reset button.
func Filters(opts core.FilterOptions) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="row filter-row">`)
		filterSelect(h, "state", "All States", opts.States)
		filterSelect(h, "district", "All Districts", opts.Districts)
		filterSelect(h, "retailerType", "All Retailer Types", opts.RetailerTypes)
		h.raw(`<div class="col-md-3"><button type="button" class="btn btn-outline-secondary w-100"`)
		h.attr("data-on:click", "$state = ''; $district = ''; $retailerType = ''; @get('"+ViewEndpoint+"')")
		h.raw(`>Reset Filters</button></div></div>`)
	})
}

func filterSelect(h *htmlWriter, signal, placeholder string, values []string) {
	h.raw(`<div class="col-md-3"><select class="form-select"`)
	h.attr("data-bind:"+signal, "")
	h.attr("data-on:change", "@get('"+ViewEndpoint+"')")
	h.raw(`><option value="">`)
	h.text(placeholder)
	h.raw(`</option>`)
	for _, v := range values {
		h.raw(`<option`)
		h.attr("value", v)
		h.raw(`>`)
		h.text(v)
		h.raw(`</option>`)
	}
	h.raw(`</select></div>`)
}

// KPIs renders the headline counters.
func KPIs(m core.Metrics) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="row g-3"`)
		h.attr("id", KPIsID)
		h.raw(`>`)
		kpiCard(h, "Active YTD", formatCount(m.ActiveYTD), "linear-gradient(90deg,#1e8449,#2ecc71)", "col-md-3")
		kpiCard(h, "Active MTD", formatCount(m.ActiveMTD), "linear-gradient(90deg,#0b74c9,#29b6f6)", "col-md-3")
		kpiCard(h, "Total Records", strconv.Itoa(m.TotalRecords), "linear-gradient(90deg,#6f42c1,#8e44ad)", "col-md-3")
		kpiCard(h, "Unique Agents", strconv.Itoa(m.UniqueAgents), "linear-gradient(90deg,#d35400,#f39c12)", "col-md-3")
		h.raw(`</div>`)
	})
}

func kpiCard(h *htmlWriter, title, value, color, col string) {
	h.raw(`<div`)
	h.attr("class", col)
	h.raw(`><div class="kpi-card"`)
	h.attr("style", "background:"+color)
	h.raw(`><div class="kpi-title">`)
	h.text(title)
	h.raw(`</div><div class="kpi-value">`)
	h.text(value)
	h.raw(`</div></div></div>`)
}

// formatCount rounds an activity sum for display.
func formatCount(v float64) string {
	return core.FormatNumber(math.Round(v))
}

// Statuses renders one card per status, each with a CSV download form
// carrying the current filter.
func Statuses(view core.View) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="row g-3 mt-2"`)
		h.attr("id", StatusesID)
		h.raw(`>`)
		for _, c := range statusCards {
			h.raw(`<div class="col-md-2"><div class="kpi-card"`)
			h.attr("style", "background:"+c.color)
			h.raw(`><div class="kpi-title">`)
			h.text(c.title)
			h.raw(`</div><div class="kpi-value">`)
			h.text(strconv.Itoa(view.Metrics.StatusCounts[c.status]))
			h.raw(`</div><form method="post" action="/download">`)
			hidden(h, "status", string(c.status))
			hidden(h, "state", view.Filter.State)
			hidden(h, "district", view.Filter.District)
			hidden(h, "type", view.Filter.RetailerType)
			h.raw(`<button class="download-btn" type="submit">&#11015; Download CSV</button></form></div></div>`)
		}
		h.raw(`</div>`)
	})
}

func hidden(h *htmlWriter, name, value string) {
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(`>`)
}

// Records renders the filtered rows in canonical column order, up to
// MaxTableRows.
func Records(records []core.Record) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="card mt-4 p-3"`)
		h.attr("id", RecordsID)
		h.raw(`>`)
		if len(records) > MaxTableRows {
			h.raw(`<p class="text-muted small">Showing the first `)
			h.text(strconv.Itoa(MaxTableRows))
			h.raw(` of `)
			h.text(strconv.Itoa(len(records)))
			h.raw(` records. Download a CSV for the rest.</p>`)
			records = records[:MaxTableRows]
		}
		h.raw(`<div class="table-responsive"><table class="table table-striped table-bordered"><thead><tr>`)
		for _, col := range core.Columns {
			h.raw(`<th>`)
			h.text(col)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, r := range records {
			h.raw(`<tr>`)
			for _, v := range r.Values() {
				h.raw(`<td>`)
				h.text(v)
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table></div></div>`)
	})
}
