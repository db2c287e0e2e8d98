// Package web is the browser and JSON API adapter. All state flows through
// the ApplicationService; the handlers only translate HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"invoice-automation/internal/app"
	webui "invoice-automation/web"
)

// Handler holds the ApplicationService, the chi router, and the pending upload store.
type Handler struct {
	svc            app.ApplicationService
	pending        *pendingStore
	fileServer     http.Handler
	templates      map[string]*template.Template
	uploadMaxBytes int64
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, uploadMaxBytes int64) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}

	h := &Handler{
		svc:            svc,
		pending:        newPendingStore(),
		fileServer:     http.FileServer(http.FS(staticFS)),
		templates:      parseTemplates(),
		uploadMaxBytes: uploadMaxBytes,
	}

	h.pending.startPurge(context.Background())

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)

	r.Get("/api/health", h.health)

	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// Browser routes.
	r.Get("/", h.invoiceFormPage)
	r.Post("/upload", h.uploadAction)
	r.Post("/invoices/save", h.saveInvoiceAction)
	r.Get("/clients", h.clientsPage)
	r.Post("/clients/add", h.clientAddAction)
	r.Post("/clients/remove", h.clientRemoveAction)

	// Document upload: body limit is managed inside the handler (multipart).
	r.Post("/api/extract", h.apiExtract)

	// All other API endpoints: 1 MB body limit to prevent unbounded request abuse.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/clients", h.apiListClients)
		r.Get("/api/clients/{name}", h.apiGetClient)
		r.Post("/api/clients", h.apiAddClient)
		r.Delete("/api/clients/{name}", h.apiRemoveClient)
		r.Post("/api/invoices", h.apiSaveInvoice)
		r.Get("/api/template", h.apiTemplate)
		r.Get("/api/next-number", h.apiNextNumber)
	})

	return r
}

// health returns service status and the next invoice number.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status     string `json:"status"`
		NextNumber string `json:"next_number"`
	}
	writeJSON(w, response{Status: "ok", NextNumber: h.svc.NextInvoiceNumber()})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
