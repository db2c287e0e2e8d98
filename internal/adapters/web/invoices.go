package web

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoice-automation/internal/app"
	"invoice-automation/internal/core"
)

// ── Browser page handlers ─────────────────────────────────────────────────────

type fieldView struct {
	Key       string
	Label     string
	Value     string
	Type      core.FieldType
	ReadOnly  bool
	Multiline bool
}

type invoiceFormData struct {
	layoutData
	Fields   []fieldView
	Clients  []core.Client
	Warnings []string
	Source   string
	BOToken  string
}

// invoiceFormPage handles GET /. With a ?bo= token the form is overlaid with
// the prefill values of a previously processed upload.
func (h *Handler) invoiceFormPage(w http.ResponseWriter, r *http.Request) {
	d := invoiceFormData{
		layoutData: layoutData{Title: "New Invoice", Active: "invoice"},
		Clients:    h.svc.ListClients(),
	}
	applyFlash(r, &d.layoutData)

	form, err := h.svc.NewInvoiceForm()
	if err != nil {
		http.Error(w, "Failed to load invoice template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if token := r.URL.Query().Get("bo"); token != "" {
		if u, ok := h.pending.get(token); ok {
			for key, value := range u.Result.Prefill {
				form[key] = value
			}
			form = h.svc.RecalculateForm(form)
			d.Warnings = u.Result.Warnings
			d.Source = u.Result.Source
			d.BOToken = token
		} else {
			d.FlashMsg = "Upload expired; please upload the document again"
			d.FlashKind = "error"
		}
	}

	for _, spec := range core.InvoiceFields {
		d.Fields = append(d.Fields, fieldView{
			Key:       spec.Key,
			Label:     spec.Label,
			Value:     form[spec.Key],
			Type:      spec.Type,
			ReadOnly:  spec.ReadOnly,
			Multiline: len(spec.Cells) > 1,
		})
	}

	h.render(w, "invoice", d)
}

// uploadAction handles POST /upload — HTML multipart form submission.
func (h *Handler) uploadAction(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := h.readUpload(w, r)
	if !ok {
		http.Redirect(w, r, "/?flash_error=invalid+or+oversized+upload", http.StatusSeeOther)
		return
	}

	result, err := h.svc.ProcessUpload(r.Context(), filename, data)
	if err != nil {
		http.Redirect(w, r, "/?flash_error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	token := uuid.NewString()
	h.pending.put(token, pendingUpload{Result: result, CreatedAt: time.Now()})
	http.Redirect(w, r,
		"/?bo="+token+"&flash_success="+url.QueryEscape("Processed "+filename),
		http.StatusSeeOther)
}

// saveInvoiceAction handles POST /invoices/save — HTML form submission.
func (h *Handler) saveInvoiceAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/?flash_error=invalid+form", http.StatusSeeOther)
		return
	}

	form := core.InvoiceForm{}
	for _, spec := range core.InvoiceFields {
		form[spec.Key] = r.FormValue(spec.Key)
	}

	result, err := h.svc.SaveInvoice(r.Context(), form)
	if err != nil {
		var vErr *app.ValidationError
		if errors.As(err, &vErr) {
			http.Redirect(w, r,
				"/?flash_error="+url.QueryEscape(strings.Join(vErr.Problems, "; ")),
				http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/?flash_error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r,
		"/?flash_success="+url.QueryEscape("Invoice "+result.InvoiceNumber+" saved to "+result.Path),
		http.StatusSeeOther)
}

// readUpload extracts the "document" part of a multipart request, bounded by
// the configured upload size limit.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		return "", nil, false
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		return "", nil, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, false
	}
	return header.Filename, data, true
}

// ── API handlers ──────────────────────────────────────────────────────────────

// apiExtract handles POST /api/extract — multipart upload, returns the
// extraction result as JSON without storing anything.
func (h *Handler) apiExtract(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := h.readUpload(w, r)
	if !ok {
		writeError(w, r, "expected multipart upload with a document part", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ProcessUpload(r.Context(), filename, data)
	if err != nil {
		writeError(w, r, err.Error(), "UNPROCESSABLE", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, result)
}

// apiSaveInvoice handles POST /api/invoices.
// Body: { form: { field_key: value, ... } }
func (h *Handler) apiSaveInvoice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Form map[string]string `json:"form"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.SaveInvoice(r.Context(), core.InvoiceForm(body.Form))
	if err != nil {
		var vErr *app.ValidationError
		if errors.As(err, &vErr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]any{
				"error":    "validation failed",
				"code":     "VALIDATION_FAILED",
				"problems": vErr.Problems,
			})
			return
		}
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// apiTemplate handles GET /api/template — the template's current field values.
func (h *Handler) apiTemplate(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.TemplateValues()
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, values)
}

// apiNextNumber handles GET /api/next-number.
func (h *Handler) apiNextNumber(w http.ResponseWriter, r *http.Request) {
	type response struct {
		NextNumber string `json:"next_number"`
	}
	writeJSON(w, response{NextNumber: h.svc.NextInvoiceNumber()})
}
