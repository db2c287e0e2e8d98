// Package app wires the domain packages into one application service that the
// web and CLI adapters share.
package app

import (
	"context"
	"strings"

	"invoice-automation/internal/bo"
	"invoice-automation/internal/core"
)

// UploadResult is what a processed business order document yields: prefilled
// form values, the raw extraction for operator review, and any warnings
// collected along the way.
type UploadResult struct {
	Filename   string           `json:"filename"`
	Source     string           `json:"source"`
	Prefill    core.InvoiceForm `json:"prefill"`
	Extraction *bo.Extraction   `json:"extraction,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// SaveResult reports where a generated invoice landed.
type SaveResult struct {
	Path          string `json:"path"`
	InvoiceNumber string `json:"invoice_number"`
	NextNumber    string `json:"next_number"`
}

// ValidationError carries every form violation found during save so the
// operator sees them all at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid invoice form: " + strings.Join(e.Problems, "; ")
}

// ApplicationService is the single entry point for every adapter. All
// operations are request-scoped; the service itself is safe for concurrent
// use.
type ApplicationService interface {
	// ProcessUpload parses an uploaded business order (PDF, CSV, or XLSX)
	// and returns prefill values for the invoice form.
	ProcessUpload(ctx context.Context, filename string, data []byte) (*UploadResult, error)

	// NewInvoiceForm builds a fresh form: template defaults overlaid with
	// the next invoice number, today's date, and the derived due date.
	NewInvoiceForm() (core.InvoiceForm, error)

	// SaveInvoice validates the form, fills in derived fields, writes the
	// workbook, and advances the invoice counter.
	SaveInvoice(ctx context.Context, form core.InvoiceForm) (*SaveResult, error)

	// RecalculateForm recomputes budget, VAT amount, total, due date, and
	// amount-in-words from the editable fields without touching disk.
	RecalculateForm(form core.InvoiceForm) core.InvoiceForm

	ListClients() []core.Client
	AddClient(name, address string) error
	RemoveClient(name string) (bool, error)
	ClientAddress(name string) (string, bool)

	// NextInvoiceNumber returns the full next invoice number, prefix
	// included, without consuming it.
	NextInvoiceNumber() string

	// TemplateValues returns the template's current field values, for
	// template verification.
	TemplateValues() (core.InvoiceForm, error)
}
