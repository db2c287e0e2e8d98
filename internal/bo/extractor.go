// Package bo extracts invoice-relevant fields from Business Order documents.
//
// The extraction is a best-effort heuristic: an ordered list of regular
// expressions scanned over whatever text the PDF library produced, first
// match wins. No field is guaranteed — every field independently degrades to
// "not found" and extraction itself never fails.
package bo

import (
	"regexp"
	"strconv"
	"strings"
)

// LineItem is one description/quantity/rate triple. Quantity and Rate are
// nil when the corresponding list had no entry at this position.
type LineItem struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
}

// Extraction is the result of scanning one Business Order document.
type Extraction struct {
	BONumber     string    `json:"bo_no,omitempty" jsonschema_description:"The business order / purchase order / schedule number, e.g. PD25|2041|4"`
	ClientName   string    `json:"client_name,omitempty" jsonschema_description:"The client or customer company name"`
	ClientTRN    string    `json:"client_trn,omitempty" jsonschema_description:"The tax registration (TRN/VAT) number, digits only"`
	Descriptions []string  `json:"descriptions,omitempty" jsonschema_description:"Line item descriptions, at most 5"`
	Quantities   []float64 `json:"quantities,omitempty" jsonschema_description:"Line item quantities in document order"`
	Rates        []float64 `json:"rates,omitempty" jsonschema_description:"Line item unit rates in document order"`
}

// Empty reports whether none of the header fields were found. The line-item
// scans are too noisy to count as a successful extraction on their own.
func (e *Extraction) Empty() bool {
	return e.BONumber == "" && e.ClientName == "" && e.ClientTRN == ""
}

// LineItems zips the independently extracted description, quantity, and rate
// lists by position, up to the longest list. There is no structural guarantee
// that index i of each list came from the same source row; this mirrors the
// document scan, which has no notion of table rows.
func (e *Extraction) LineItems() []LineItem {
	n := len(e.Descriptions)
	if len(e.Quantities) > n {
		n = len(e.Quantities)
	}
	if len(e.Rates) > n {
		n = len(e.Rates)
	}

	items := make([]LineItem, 0, n)
	for i := 0; i < n; i++ {
		var item LineItem
		if i < len(e.Descriptions) {
			item.Description = e.Descriptions[i]
		}
		if i < len(e.Quantities) {
			q := e.Quantities[i]
			item.Quantity = &q
		}
		if i < len(e.Rates) {
			r := e.Rates[i]
			item.Rate = &r
		}
		items = append(items, item)
	}
	return items
}

// Compiled once; ordered where order matters (first match wins).
var (
	reCompactBONumber = regexp.MustCompile(`(?i)(?:PD|PO|BO|Schedule)\d{2}\|?\d+\|?\d+`)
	reBONumberLabels  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Order\s*No|BO\s*No|PO\s*No|Schedule\s*No)[:\s]+([A-Za-z0-9\-|]+)`),
		regexp.MustCompile(`(?i)(?:BONumber|PONumber|ScheduleNumber)[:\s]+([A-Za-z0-9\-|]+)`),
		regexp.MustCompile(`(?i)Order\s*Number[:\s]+([A-Za-z0-9\-|]+)`),
	}

	reClientName = regexp.MustCompile(`(?i)(?:Attention|Client|Customer|Recipient|Company)[:\s]+([^\n]+)`)
	reSpaceRuns  = regexp.MustCompile(`\s{2,}`)

	reTRNLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:VAT\s*(?:Registration|No|Number|ID)|TRN|Tax\s*(?:ID|Registration))[:\s]+([0-9][0-9A-Za-z \t\-]*)`),
		regexp.MustCompile(`(?i)(?:TRN|VAT)[:\s]+([0-9][0-9A-Za-z \t\-]*)`),
		regexp.MustCompile(`(?i)VAT\s*REGISTRATION\s*No[.:]?\s*([0-9][0-9A-Za-z \t\-]*)`),
	}
	reNonDigit = regexp.MustCompile(`\D`)

	// Description layers stay case-sensitive: the keyword vocabulary relies
	// on the capitalization media BOs actually use.
	reKeywordLine   = regexp.MustCompile(`(?:Mixed\s+Placement|Clickable|Banner|Video|Impression|Campaign|Ad\s+(?:Space|Placement))[^\n]*`)
	reCapitalPhrase = regexp.MustCompile(`([A-Z][A-Za-z\s]{10,}(?:Placement|Banner|Video|Campaign|Ad))[^\n]*`)
	reDetailsBlock  = regexp.MustCompile(`(?i)Details[:\s]+([^\n]+(?:\n[^\n]*){0,5})`)
	reLeadingRowNum = regexp.MustCompile(`^[\d\-|]+\s*`)
	reAnyDigit      = regexp.MustCompile(`\d`)
	reAnyLetter     = regexp.MustCompile(`[A-Za-z]`)

	reQuantityLabel = regexp.MustCompile(`(?i)(?:Volume|Quantity|QTY|Units?)[:\s]+(\d+(?:,\d{3})*(?:\.\d+)?)`)
	reBareNumber    = regexp.MustCompile(`\b(\d+(?:,\d{3})*)\b`)

	reRateLabel = regexp.MustCompile(`(?i)(?:Rate|Unit\s*Cost|Unit\s*Price|Price)[:\s]+(?:\$|USD\s*)?(\d+(?:,\d{3})*(?:\.\d+)?)`)
	reCurrency  = []*regexp.Regexp{
		regexp.MustCompile(`\$\s*(\d+(?:,\d{3})*(?:\.\d+)?)`),
		regexp.MustCompile(`USD\s+(\d+(?:,\d{3})*(?:\.\d+)?)`),
	}
)

const (
	maxDescriptions = 5
	maxQuantities   = 10
	maxRates        = 10

	minQuantity = 1
	maxQuantity = 100000
	minRate     = 1
	maxRate     = 1000000
)

// Extract scans raw document text and returns whatever fields it can find.
func Extract(text string) *Extraction {
	lines := strings.Split(text, "\n")
	return &Extraction{
		BONumber:     extractBONumber(text),
		ClientName:   extractClientName(text),
		ClientTRN:    extractTRN(text),
		Descriptions: extractDescriptions(text, lines),
		Quantities:   extractQuantities(text, lines),
		Rates:        extractRates(text),
	}
}

func extractBONumber(text string) string {
	// Compact form first: PD25|2041|4 and friends.
	if m := reCompactBONumber.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	for _, re := range reBONumberLabels {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func extractClientName(text string) string {
	m := reClientName.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	value := strings.TrimSpace(reSpaceRuns.ReplaceAllString(m[1], " "))
	if value == "" || len(value) >= 150 {
		return ""
	}
	return value
}

func extractTRN(text string) string {
	for _, re := range reTRNLabels {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		digits := reNonDigit.ReplaceAllString(m[1], "")
		if len(digits) >= 8 {
			return digits
		}
	}
	return ""
}

func extractDescriptions(text string, lines []string) []string {
	var out []string
	seen := map[string]bool{}

	add := func(desc string) {
		desc = strings.TrimSpace(desc)
		if desc == "" || len(desc) >= 200 || seen[desc] {
			return
		}
		seen[desc] = true
		out = append(out, desc)
	}

	// Layer 1: domain keyword lines and capitalized phrases ending in a keyword.
	for _, m := range reKeywordLine.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range reCapitalPhrase.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	// Layer 2: a labeled "Details:" block, up to 5 following non-empty lines.
	if m := reDetailsBlock.FindStringSubmatch(text); m != nil {
		var block []string
		for _, line := range strings.Split(m[1], "\n") {
			if line = strings.TrimSpace(line); line != "" {
				block = append(block, line)
			}
		}
		if len(block) > 5 {
			block = block[:5]
		}
		for _, line := range block {
			if len(line) > 5 {
				add(line)
			}
		}
	}

	// Layer 3: likely table rows — long lines containing a digit, with any
	// leading row-number prefix stripped.
	for _, line := range lines {
		if len(line) <= 20 || !reAnyDigit.MatchString(line) {
			continue
		}
		cleaned := strings.TrimSpace(reLeadingRowNum.ReplaceAllString(line, ""))
		if len(cleaned) > 10 && reAnyLetter.MatchString(cleaned) {
			add(cleaned)
		}
	}

	if len(out) > maxDescriptions {
		out = out[:maxDescriptions]
	}
	return out
}

func extractQuantities(text string, lines []string) []float64 {
	var out []float64

	for _, m := range reQuantityLabel.FindAllStringSubmatch(text, -1) {
		if v, err := parseNumber(m[1]); err == nil && v > 0 {
			out = append(out, v)
		}
	}

	// Fallback: bare numbers in any line, kept if they look quantity-sized.
	for _, line := range lines {
		for _, m := range reBareNumber.FindAllStringSubmatch(line, -1) {
			v, err := parseNumber(m[1])
			if err != nil || v < minQuantity || v > maxQuantity {
				continue
			}
			if !containsFloat(out, v) {
				out = append(out, v)
			}
		}
	}

	if len(out) > maxQuantities {
		out = out[:maxQuantities]
	}
	return out
}

func extractRates(text string) []float64 {
	var out []float64

	for _, m := range reRateLabel.FindAllStringSubmatch(text, -1) {
		if v, err := parseNumber(m[1]); err == nil && v > 0 {
			out = append(out, v)
		}
	}

	// Fallback: currency-marked amounts anywhere in the text.
	for _, re := range reCurrency {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := parseNumber(m[1])
			if err != nil || v < minRate || v > maxRate {
				continue
			}
			if !containsFloat(out, v) {
				out = append(out, v)
			}
		}
	}

	if len(out) > maxRates {
		out = out[:maxRates]
	}
	return out
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func containsFloat(values []float64, v float64) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
