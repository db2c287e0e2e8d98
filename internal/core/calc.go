package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// VAT regimes: invoices are either non-GCC (0%) or GCC (5%).
const (
	VATRateNonGCC = 0
	VATRateGCC    = 5
)

var thousand = decimal.NewFromInt(1000)

// Budget computes quantity × rate / 1000.
func Budget(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate).Div(thousand)
}

// VATAmount computes budget × vatRate / 100.
func VATAmount(budget decimal.Decimal, vatRate int) decimal.Decimal {
	return budget.Mul(decimal.NewFromInt(int64(vatRate))).Div(decimal.NewFromInt(100))
}

// Totals holds every derived monetary field for one invoice.
type Totals struct {
	Budget      decimal.Decimal
	VATRate     int
	VATAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// ComputeTotals derives budget, VAT amount, and total from quantity, rate,
// and the selected VAT rate. It is re-evaluated on every form interaction.
func ComputeTotals(quantity, rate decimal.Decimal, vatRate int) Totals {
	budget := Budget(quantity, rate)
	vat := VATAmount(budget, vatRate)
	return Totals{
		Budget:      budget,
		VATRate:     vatRate,
		VATAmount:   vat,
		TotalAmount: budget.Add(vat),
	}
}

const dateLayout = "02/01/2006"

// DueDate returns date + 30 days in DD/MM/YYYY format. It reports false when
// the input does not parse as DD/MM/YYYY, in which case the due date is left
// unset rather than guessed.
func DueDate(date string) (string, bool) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", false
	}
	return parsed.AddDate(0, 0, 30).Format(dateLayout), true
}
