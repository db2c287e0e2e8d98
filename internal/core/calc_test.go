package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		rate      string
		vatRate   int
		wantBudg  string
		wantVAT   string
		wantTotal string
	}{
		{
			name:     "gcc invoice",
			quantity: "5000", rate: "14", vatRate: VATRateGCC,
			wantBudg: "70", wantVAT: "3.5", wantTotal: "73.5",
		},
		{
			name:     "non-gcc invoice has no vat",
			quantity: "5000", rate: "14", vatRate: VATRateNonGCC,
			wantBudg: "70", wantVAT: "0", wantTotal: "70",
		},
		{
			name:     "fractional budget",
			quantity: "1234", rate: "7.5", vatRate: VATRateGCC,
			wantBudg: "9.255", wantVAT: "0.46275", wantTotal: "9.71775",
		},
		{
			name:     "zero quantity",
			quantity: "0", rate: "100", vatRate: VATRateGCC,
			wantBudg: "0", wantVAT: "0", wantTotal: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := decimal.RequireFromString(tt.quantity)
			r := decimal.RequireFromString(tt.rate)
			got := ComputeTotals(q, r, tt.vatRate)

			if !got.Budget.Equal(decimal.RequireFromString(tt.wantBudg)) {
				t.Errorf("Budget = %s, want %s", got.Budget, tt.wantBudg)
			}
			if !got.VATAmount.Equal(decimal.RequireFromString(tt.wantVAT)) {
				t.Errorf("VATAmount = %s, want %s", got.VATAmount, tt.wantVAT)
			}
			if !got.TotalAmount.Equal(decimal.RequireFromString(tt.wantTotal)) {
				t.Errorf("TotalAmount = %s, want %s", got.TotalAmount, tt.wantTotal)
			}
		})
	}
}

func TestDueDate(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		want   string
		wantOK bool
	}{
		{"thirty days later", "01/01/2025", "31/01/2025", true},
		{"crosses month boundary", "15/06/2025", "15/07/2025", true},
		{"crosses year boundary", "15/12/2025", "14/01/2026", true},
		{"wrong format", "2025-01-01", "", false},
		{"empty", "", "", false},
		{"garbage", "not a date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DueDate(tt.date)
			if ok != tt.wantOK {
				t.Fatalf("DueDate(%q) ok = %v, want %v", tt.date, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("DueDate(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}
