package webui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/refreshlog"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var dataTypes = []string{"rates", "status", "units", "refreshes"}

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

type debugData struct {
	Title string
	Pre   string
	Links []string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	var buf bytes.Buffer
	err := debugTemplate.Execute(&buf, debugData{
		Title: title,
		Pre:   dumper.Sdump(data),
		Links: dataTypes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	var data interface{}
	var title string

	switch r.URL.Query().Get("dataType") {
	case "rates":
		snapshot := webUI.CurrentRates()
		updated, _ := snapshot.UpdatedAt()
		data = map[string]interface{}{
			"rates":     snapshot.Rates(),
			"updatedAt": updated,
			"fallback":  snapshot.IsFallback(),
		}
		title = "Exchange Rates - Current Snapshot"
	case "status":
		if webUI.RatesManager == nil {
			data = "rates manager not running"
		} else {
			data = webUI.RatesManager.Status()
		}
		title = "Exchange Rates - Refresh Status"
	case "units":
		units := make(map[conversion.Domain][]conversion.UnitInfo)
		for _, d := range conversion.Domains() {
			units[d], _ = conversion.Units(d)
		}
		data = units
		title = "Supported Units"
	case "refreshes":
		if webUI.RefreshLog == nil {
			data = "refresh log disabled"
		} else {
			entries, err := webUI.RefreshLog.Recent(r.Context(), refreshlog.DefaultLimit)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			total, err := webUI.RefreshLog.Count(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			data = struct {
				Total  int
				Recent []refreshlog.Entry
			}{total, entries}
		}
		title = "Exchange Rates - Refresh Log"
	default:
		data = map[string]string{
			"error": "Please use one of the following: rates, status, units, refreshes.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
