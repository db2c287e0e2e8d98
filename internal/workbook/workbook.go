// Package workbook reads and writes invoice fields in an Excel template
// through the static field-to-cell mapping.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"invoice-automation/internal/core"
)

var (
	// ErrTemplateNotFound is returned when the template workbook is missing.
	// It is fatal at startup: nothing can be generated without the template.
	ErrTemplateNotFound = errors.New("template workbook not found")
	// ErrUnknownField is returned for a field key absent from the mapping.
	ErrUnknownField = errors.New("unknown invoice field")
)

// Workbook wraps one loaded template workbook. It is not safe for concurrent
// use; the form flow is a single-operator request/response cycle.
type Workbook struct {
	file      *excelize.File
	sheet     string
	outputDir string
}

// Load opens the template at templatePath. Saved invoices are written into
// outputDir, which is created on first save if absent. Fields are addressed
// on the "Invoice" sheet, or the first sheet when no sheet has that name.
func Load(templatePath, outputDir string) (*Workbook, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
	}

	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", templatePath, err)
	}

	sheet := ""
	for _, name := range f.GetSheetList() {
		if name == "Invoice" {
			sheet = name
			break
		}
	}
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			_ = f.Close()
			return nil, fmt.Errorf("template %s has no sheets", templatePath)
		}
		sheet = sheets[0]
	}

	return &Workbook{file: f, sheet: sheet, outputDir: outputDir}, nil
}

// Close releases the underlying workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// ReadField returns the current value of a field. Multi-cell fields are
// joined with newline and trimmed.
func (w *Workbook) ReadField(key string) (string, error) {
	spec, ok := core.FieldByKey(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, key)
	}

	values := make([]string, 0, len(spec.Cells))
	for _, cell := range spec.Cells {
		v, err := w.file.GetCellValue(w.sheet, cell)
		if err != nil {
			return "", fmt.Errorf("read cell %s: %w", cell, err)
		}
		values = append(values, v)
	}
	return strings.TrimSpace(strings.Join(values, "\n")), nil
}

// WriteField assigns a value to a field's cell(s). Single-cell fields take
// the value as-is, newlines included. Multi-cell fields split the value by
// newline and assign positionally; missing parts become empty strings so a
// shorter value clears the remaining cells. Read-only fields are silently
// skipped.
func (w *Workbook) WriteField(key, value string) error {
	spec, ok := core.FieldByKey(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	if spec.ReadOnly {
		return nil
	}

	if len(spec.Cells) == 1 {
		if err := w.file.SetCellValue(w.sheet, spec.Cells[0], value); err != nil {
			return fmt.Errorf("write cell %s: %w", spec.Cells[0], err)
		}
		return nil
	}

	parts := strings.Split(value, "\n")
	for i, cell := range spec.Cells {
		part := ""
		if i < len(parts) {
			part = strings.TrimRight(parts[i], "\r")
		}
		if err := w.file.SetCellValue(w.sheet, cell, part); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	return nil
}

// ReadAll returns the current value of every mapped field. Per-field read
// errors degrade to an empty value instead of failing the whole form.
func (w *Workbook) ReadAll() core.InvoiceForm {
	form := core.InvoiceForm{}
	for _, spec := range core.InvoiceFields {
		v, err := w.ReadField(spec.Key)
		if err != nil {
			v = ""
		}
		form[spec.Key] = v
	}
	return form
}

// WriteAll writes every known field present in form. Unknown keys are
// ignored so callers can pass a form carrying extra derived values.
func (w *Workbook) WriteAll(form core.InvoiceForm) error {
	for key, value := range form {
		if _, ok := core.FieldByKey(key); !ok {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return err
		}
	}
	return nil
}

var filenameSanitizer = strings.NewReplacer(
	"/", "-", "\\", "_", "\n", "_", "\r", "",
	":", "-", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "-",
)

// Save writes the workbook into the output directory and returns the full
// path. With an empty filename the name is derived from the invoice-number
// field, falling back to a timestamp when that field is empty.
func (w *Workbook) Save(filename string) (string, error) {
	if filename == "" {
		invoiceNo, err := w.ReadField("invoice_no")
		if err == nil && strings.TrimSpace(invoiceNo) != "" {
			filename = filenameSanitizer.Replace(strings.TrimSpace(invoiceNo)) + ".xlsx"
		} else {
			filename = "Invoice_" + time.Now().Format("20060102_150405") + ".xlsx"
		}
	} else {
		filename = filenameSanitizer.Replace(filename)
	}

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", w.outputDir, err)
	}

	path := filepath.Join(w.outputDir, filename)
	if err := w.file.SaveAs(path); err != nil {
		return "", fmt.Errorf("save invoice %s: %w", path, err)
	}
	return path, nil
}
