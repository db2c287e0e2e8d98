package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Validator checks an InvoiceForm against the static rule table. It
// accumulates every violation rather than failing on the first one so the
// operator can fix the whole form in one pass.
type Validator struct {
	errs []string
}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAll runs required-field and numeric-range checks and reports
// whether the form passed. Previous errors are discarded on each call.
func (v *Validator) ValidateAll(form InvoiceForm) bool {
	v.errs = nil

	for _, key := range requiredFields {
		if strings.TrimSpace(form[key]) == "" {
			v.errs = append(v.errs, fmt.Sprintf("%s is required", labelFor(key)))
		}
	}

	for key, min := range numericMinimums {
		raw := strings.TrimSpace(form[key])
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			v.errs = append(v.errs, fmt.Sprintf("%s must be a number", labelFor(key)))
			continue
		}
		if value < min {
			v.errs = append(v.errs, fmt.Sprintf("%s must be at least %g", labelFor(key), min))
		}
	}

	if raw := strings.TrimSpace(form["vat_rate"]); raw != "" {
		rate, err := strconv.Atoi(raw)
		if err != nil || !allowedVATRate(rate) {
			v.errs = append(v.errs, "VAT Rate (%) must be 0 (non-GCC) or 5 (GCC)")
		}
	}

	return len(v.errs) == 0
}

// Errors returns the violations found by the last ValidateAll call.
func (v *Validator) Errors() []string {
	return v.errs
}

func allowedVATRate(rate int) bool {
	for _, allowed := range allowedVATRates {
		if rate == allowed {
			return true
		}
	}
	return false
}

func labelFor(key string) string {
	if f, ok := FieldByKey(key); ok {
		return f.Label
	}
	return key
}
