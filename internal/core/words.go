package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var onesWords = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

var scaleWords = []struct {
	value int64
	name  string
}{
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
}

// intToWords spells out a non-negative integer below one trillion.
func intToWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n < 100 {
		s := tensWords[n/10]
		if n%10 != 0 {
			s += " " + onesWords[n%10]
		}
		return s
	}
	if n < 1000 {
		s := onesWords[n/100] + " Hundred"
		if n%100 != 0 {
			s += " " + intToWords(n%100)
		}
		return s
	}
	for _, scale := range scaleWords {
		if n >= scale.value {
			s := intToWords(n/scale.value) + " " + scale.name
			if n%scale.value != 0 {
				s += " " + intToWords(n%scale.value)
			}
			return s
		}
	}
	return ""
}

// AmountInWords spells a monetary amount as uppercase dollars and cents,
// e.g. 73.50 → "SEVENTY THREE DOLLARS AND FIFTY CENTS". Zero dollars renders
// as "ZERO DOLLARS"; the cents clause is appended only when nonzero.
func AmountInWords(amount decimal.Decimal) string {
	abs := amount.Abs()
	dollars := abs.IntPart()
	cents := abs.Sub(decimal.NewFromInt(dollars)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	parts := []string{intToWords(dollars) + " Dollars"}
	if cents > 0 {
		parts = append(parts, "and "+intToWords(cents)+" Cents")
	}
	return strings.ToUpper(strings.Join(parts, " "))
}
