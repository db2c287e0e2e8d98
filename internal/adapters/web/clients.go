package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"invoice-automation/internal/core"
)

// ── Browser page handlers ─────────────────────────────────────────────────────

type clientsPageData struct {
	layoutData
	Predefined []core.Client
	Custom     []core.Client
}

// clientsPage handles GET /clients.
func (h *Handler) clientsPage(w http.ResponseWriter, r *http.Request) {
	d := clientsPageData{
		layoutData: layoutData{Title: "Clients", Active: "clients"},
	}
	applyFlash(r, &d.layoutData)

	for _, c := range h.svc.ListClients() {
		if c.Custom {
			d.Custom = append(d.Custom, c)
		} else {
			d.Predefined = append(d.Predefined, c)
		}
	}

	h.render(w, "clients", d)
}

// clientAddAction handles POST /clients/add — HTML form submission.
func (h *Handler) clientAddAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/clients?flash_error=invalid+form", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	address := r.FormValue("address")
	if err := h.svc.AddClient(name, address); err != nil {
		http.Redirect(w, r, "/clients?flash_error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r,
		"/clients?flash_success="+url.QueryEscape("Client "+name+" added"),
		http.StatusSeeOther)
}

// clientRemoveAction handles POST /clients/remove — HTML form submission.
func (h *Handler) clientRemoveAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/clients?flash_error=invalid+form", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	removed, err := h.svc.RemoveClient(name)
	if err != nil {
		http.Redirect(w, r, "/clients?flash_error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	if !removed {
		http.Redirect(w, r, "/clients?flash_error=client+not+found", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r,
		"/clients?flash_success="+url.QueryEscape("Client "+name+" removed"),
		http.StatusSeeOther)
}

// ── API handlers ──────────────────────────────────────────────────────────────

// apiListClients handles GET /api/clients.
func (h *Handler) apiListClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ListClients())
}

// apiGetClient handles GET /api/clients/{name} — address lookup for the
// invoice form when a client is selected.
func (h *Handler) apiGetClient(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, "invalid client name", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	address, ok := h.svc.ClientAddress(name)
	if !ok {
		writeError(w, r, "client "+name+" not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"name": name, "address": address})
}

// apiAddClient handles POST /api/clients.
// Body: { name, address }
func (h *Handler) apiAddClient(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := h.svc.AddClient(body.Name, body.Address); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateClient):
			writeError(w, r, err.Error(), "CONFLICT", http.StatusConflict)
		case errors.Is(err, core.ErrInvalidInput):
			writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		default:
			writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, core.Client{Name: body.Name, Address: body.Address, Custom: true})
}

// apiRemoveClient handles DELETE /api/clients/{name}.
func (h *Handler) apiRemoveClient(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, "invalid client name", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	removed, err := h.svc.RemoveClient(name)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if !removed {
		writeError(w, r, "client "+name+" not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"status": "removed", "name": name})
}
