package web

import (
	"html/template"
	"log"
	"net/http"

	webui "invoice-automation/web"
)

// layoutData is passed to every page template.
type layoutData struct {
	Title     string
	Active    string
	FlashMsg  string
	FlashKind string
}

var pageFiles = map[string]string{
	"invoice": "templates/invoice.html",
	"clients": "templates/clients.html",
}

// parseTemplates builds one template set per page, each sharing the layout.
// Panics on a broken embedded template; that is a build defect, not a
// runtime condition.
func parseTemplates() map[string]*template.Template {
	out := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		out[name] = template.Must(template.ParseFS(webui.Templates, "templates/layout.html", file))
	}
	return out
}

func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates[page].ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("render %s: %v", page, err)
	}
}

// applyFlash copies flash_success / flash_error query params into the layout.
func applyFlash(r *http.Request, d *layoutData) {
	if fe := r.URL.Query().Get("flash_error"); fe != "" {
		d.FlashMsg = fe
		d.FlashKind = "error"
	}
	if fs := r.URL.Query().Get("flash_success"); fs != "" {
		d.FlashMsg = fs
		d.FlashKind = "success"
	}
}
