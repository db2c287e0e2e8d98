package app

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"invoice-automation/internal/ai"
	"invoice-automation/internal/bo"
	"invoice-automation/internal/core"
	"invoice-automation/internal/workbook"
)

// Config carries the file locations and invoice numbering scheme.
type Config struct {
	TemplateFile  string
	OutputDir     string
	InvoicePrefix string
}

type appService struct {
	cfg      Config
	registry *core.Registry
	agent    *ai.Agent
}

// NewService builds the application service. The template file is probed once
// up front so a missing template fails at startup instead of on first save.
func NewService(cfg Config, registry *core.Registry, agent *ai.Agent) (ApplicationService, error) {
	wb, err := workbook.Load(cfg.TemplateFile, cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	_ = wb.Close()
	return &appService{cfg: cfg, registry: registry, agent: agent}, nil
}

func (s *appService) ProcessUpload(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	result := &UploadResult{Filename: filename, Prefill: core.InvoiceForm{}}

	switch {
	case bo.IsPDF(data):
		result.Source = "pdf"
		if err := s.processPDF(ctx, data, result); err != nil {
			return nil, err
		}
	case strings.EqualFold(filepath.Ext(filename), ".csv"):
		result.Source = "csv"
		values, err := bo.FromCSV(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", filename, err)
		}
		applyTabular(values, result)
	case strings.EqualFold(filepath.Ext(filename), ".xlsx"):
		result.Source = "xlsx"
		values, err := bo.FromWorkbook(data)
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", filename, err)
		}
		applyTabular(values, result)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filename)
	}

	// A known client name fills the address from the registry.
	if name := result.Prefill["client_name"]; name != "" {
		if addr, ok := s.registry.AddressOf(name); ok {
			result.Prefill["client_address"] = addr
		}
	}

	return result, nil
}

func (s *appService) processPDF(ctx context.Context, data []byte, result *UploadResult) error {
	text, err := bo.ExtractText(data)
	if err != nil {
		return fmt.Errorf("extract PDF text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		result.Warnings = append(result.Warnings, "no text could be extracted from the PDF")
		return nil
	}

	extraction := bo.Extract(text)

	if extraction.Empty() && s.agent.Enabled() {
		aiExtraction, err := s.agent.ExtractDocument(ctx, text)
		if err != nil {
			log.Printf("ai extraction failed, keeping heuristic result: %v", err)
			result.Warnings = append(result.Warnings, "AI extraction failed; heuristic result used")
		} else {
			extraction = aiExtraction
			result.Source = "ai"
		}
	}

	result.Extraction = extraction
	applyExtraction(extraction, result)
	return nil
}

func applyExtraction(extraction *bo.Extraction, result *UploadResult) {
	set := func(key, value string) {
		if value != "" {
			result.Prefill[key] = value
		}
	}
	set("bo_no", extraction.BONumber)
	set("client_name", extraction.ClientName)
	set("client_trn", extraction.ClientTRN)

	items := extraction.LineItems()
	if len(items) == 0 {
		result.Warnings = append(result.Warnings, "no line items found in the document")
		return
	}

	first := items[0]
	set("description", first.Description)
	if first.Quantity != nil {
		set("quantity", formatNumber(*first.Quantity))
	}
	if first.Rate != nil {
		set("rate", formatNumber(*first.Rate))
	}
	if len(items) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d line items found; only the first is prefilled", len(items)))
	}
}

func applyTabular(values map[string]string, result *UploadResult) {
	if len(values) == 0 {
		result.Warnings = append(result.Warnings, "no recognizable columns found in the document")
		return
	}
	for key, value := range values {
		result.Prefill[key] = value
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *appService) NewInvoiceForm() (core.InvoiceForm, error) {
	wb, err := workbook.Load(s.cfg.TemplateFile, s.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()

	form := wb.ReadAll()
	form["invoice_no"] = s.NextInvoiceNumber()
	form["date"] = time.Now().Format("02/01/2006")
	if form["vat_rate"] == "" {
		form["vat_rate"] = strconv.Itoa(core.VATRateGCC)
	}
	return s.RecalculateForm(form), nil
}

func (s *appService) RecalculateForm(form core.InvoiceForm) core.InvoiceForm {
	out := core.InvoiceForm{}
	for k, v := range form {
		out[k] = v
	}

	if due, ok := core.DueDate(strings.TrimSpace(out["date"])); ok {
		out["due_date"] = due
	}

	quantity, qErr := parseDecimal(out["quantity"])
	rate, rErr := parseDecimal(out["rate"])
	vatRate, vErr := strconv.Atoi(strings.TrimSpace(out["vat_rate"]))
	if qErr != nil || rErr != nil || vErr != nil {
		// Unparsable inputs invalidate the derived fields; stale totals from
		// an earlier round trip must not be shown next to a garbage quantity.
		for _, key := range []string{"budget", "vat_amount", "total_amount", "total_in_words"} {
			out[key] = ""
		}
		return out
	}

	totals := core.ComputeTotals(quantity, rate, vatRate)
	out["budget"] = totals.Budget.String()
	out["vat_amount"] = totals.VATAmount.String()
	out["total_amount"] = totals.TotalAmount.String()
	out["total_in_words"] = core.AmountInWords(totals.TotalAmount)
	return out
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

func (s *appService) SaveInvoice(ctx context.Context, form core.InvoiceForm) (*SaveResult, error) {
	form = s.RecalculateForm(form)

	validator := core.NewValidator()
	if !validator.ValidateAll(form) {
		return nil, &ValidationError{Problems: validator.Errors()}
	}

	wb, err := workbook.Load(s.cfg.TemplateFile, s.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()

	// The VAT rate cell carries a label, not a bare number.
	toWrite := core.InvoiceForm{}
	for k, v := range form {
		toWrite[k] = v
	}
	if rate, err := strconv.Atoi(strings.TrimSpace(form["vat_rate"])); err == nil {
		toWrite["vat_rate"] = fmt.Sprintf("VAT(%d%%)", rate)
	}

	if err := wb.WriteAll(toWrite); err != nil {
		return nil, err
	}

	path, err := wb.Save("")
	if err != nil {
		return nil, err
	}

	if err := s.registry.AdvanceInvoiceNumber(); err != nil {
		// The invoice is already on disk; a stale counter is recoverable,
		// a lost invoice is not.
		log.Printf("advance invoice counter: %v", err)
	}

	log.Printf("invoice saved: %s", path)
	return &SaveResult{
		Path:          path,
		InvoiceNumber: form["invoice_no"],
		NextNumber:    s.NextInvoiceNumber(),
	}, nil
}

func (s *appService) ListClients() []core.Client {
	return s.registry.All()
}

func (s *appService) AddClient(name, address string) error {
	return s.registry.AddCustom(name, address)
}

func (s *appService) RemoveClient(name string) (bool, error) {
	return s.registry.RemoveCustom(name)
}

func (s *appService) ClientAddress(name string) (string, bool) {
	return s.registry.AddressOf(name)
}

func (s *appService) NextInvoiceNumber() string {
	return s.cfg.InvoicePrefix + s.registry.NextInvoiceNumber()
}

func (s *appService) TemplateValues() (core.InvoiceForm, error) {
	wb, err := workbook.Load(s.cfg.TemplateFile, s.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()
	return wb.ReadAll(), nil
}
