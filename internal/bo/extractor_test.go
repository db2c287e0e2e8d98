package bo

import (
	"strings"
	"testing"
)

func TestExtractBONumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"compact pipe form", "Schedule PD25|2041|4 confirmed", "PD25|2041|4"},
		{"labeled order no", "Order No: XYZ-123\nsome more text", "XYZ-123"},
		{"labeled bo no", "BO No: BO25-0042", "BO25-0042"},
		{"order number label", "Order Number: 778899", "778899"},
		{"compact wins over label", "Order No: ABC-1\nPO25|100|2", "PO25|100|2"},
		{"nothing", "no identifiers here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got.BONumber != tt.want {
				t.Errorf("BONumber = %q, want %q", got.BONumber, tt.want)
			}
		})
	}
}

func TestExtractClientName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"attention label", "Attention: Gulf News Media\nDubai", "Gulf News Media"},
		{"client label", "Client: Arabian Radio Network", "Arabian Radio Network"},
		{"space runs collapsed", "Customer:   MBC    Group  ", "MBC Group"},
		{"overlong value rejected", "Client: " + strings.Repeat("x", 160), ""},
		{"no label", "Dear sirs, please find attached", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got.ClientName != tt.want {
				t.Errorf("ClientName = %q, want %q", got.ClientName, tt.want)
			}
		})
	}
}

func TestExtractTRN(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"trn label", "TRN: 100041432100003", "100041432100003"},
		{"vat registration with letter", "VAT REGISTRATION No. 100041432Z0003", "1000414320003"},
		{"hyphenated digits", "Tax Registration: 1000-4143-2000", "100041432000"},
		{"too few digits rejected", "TRN: 12345", ""},
		{"no label", "totally unrelated 100041432100003", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got.ClientTRN != tt.want {
				t.Errorf("ClientTRN = %q, want %q", got.ClientTRN, tt.want)
			}
		})
	}
}

func TestExtractDescriptions(t *testing.T) {
	text := strings.Join([]string{
		"Mixed Placement across homepage and section fronts",
		"Clickable banner 300x250 run of network",
		"12| Premium offering desktop run 2025",
	}, "\n")

	got := Extract(text)
	if len(got.Descriptions) == 0 {
		t.Fatal("no descriptions extracted")
	}
	if got.Descriptions[0] != "Mixed Placement across homepage and section fronts" {
		t.Errorf("first description = %q", got.Descriptions[0])
	}

	found := false
	for _, d := range got.Descriptions {
		if d == "Premium offering desktop run 2025" {
			found = true
		}
		if strings.HasPrefix(d, "12|") {
			t.Errorf("row number prefix not stripped: %q", d)
		}
	}
	if !found {
		t.Errorf("table row description missing from %v", got.Descriptions)
	}
}

func TestExtractDetailsBlock(t *testing.T) {
	got := Extract("Details: Premium weekday package\nIncludes homepage placements only")

	want := map[string]bool{
		"Premium weekday package":           false,
		"Includes homepage placements only": false,
	}
	for _, d := range got.Descriptions {
		if _, ok := want[d]; ok {
			want[d] = true
		}
	}
	for line, seen := range want {
		if !seen {
			t.Errorf("details line %q missing from %v", line, got.Descriptions)
		}
	}
}

func TestExtractDescriptionsCapped(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "Clickable banner variant number "+strings.Repeat("x", i+1))
	}
	got := Extract(strings.Join(lines, "\n"))
	if len(got.Descriptions) > maxDescriptions {
		t.Errorf("descriptions = %d, cap is %d", len(got.Descriptions), maxDescriptions)
	}
}

func TestExtractQuantities(t *testing.T) {
	got := Extract("Volume: 5,000 impressions\nsome row with 250 units\nhuge 2000000 ignored\n")

	if len(got.Quantities) == 0 || got.Quantities[0] != 5000 {
		t.Fatalf("Quantities = %v, want labeled 5000 first", got.Quantities)
	}
	for _, q := range got.Quantities {
		if q > maxQuantity {
			t.Errorf("out-of-range quantity kept: %v", q)
		}
	}
}

func TestExtractRates(t *testing.T) {
	got := Extract("Rate: 14.50 per thousand\ntotal price $ 1,200.00\n")

	if len(got.Rates) == 0 || got.Rates[0] != 14.5 {
		t.Fatalf("Rates = %v, want labeled 14.5 first", got.Rates)
	}

	foundCurrency := false
	for _, r := range got.Rates {
		if r == 1200 {
			foundCurrency = true
		}
	}
	if !foundCurrency {
		t.Errorf("currency-marked rate missing from %v", got.Rates)
	}
}

func TestExtractionEmpty(t *testing.T) {
	if !Extract("nothing useful").Empty() {
		t.Error("expected empty extraction")
	}
	if Extract("Order No: X-1").Empty() {
		t.Error("extraction with a BO number is not empty")
	}
	// Line items alone do not count as a successful extraction.
	if !Extract("Clickable banner only, nothing else useful here").Empty() {
		t.Error("line items alone should leave the extraction empty")
	}
}

func TestLineItemsZip(t *testing.T) {
	q1, r1 := 5000.0, 14.0
	e := &Extraction{
		Descriptions: []string{"Banner", "Video"},
		Quantities:   []float64{q1},
		Rates:        []float64{r1, 20, 30},
	}

	items := e.LineItems()
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[0].Description != "Banner" || *items[0].Quantity != q1 || *items[0].Rate != r1 {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Quantity != nil {
		t.Error("item 1 should have no quantity")
	}
	if items[2].Description != "" || items[2].Rate == nil {
		t.Errorf("item 2 = %+v", items[2])
	}
}

func TestExtractFullDocument(t *testing.T) {
	text := strings.Join([]string{
		"BUSINESS ORDER",
		"Schedule PD25|2041|4",
		"Attention: Gulf News Media",
		"VAT REGISTRATION No. 100041432Z0003",
		"",
		"1 | Mixed Placement desktop and mobile network",
		"Volume: 5,000",
		"Rate: 14.00",
	}, "\n")

	got := Extract(text)
	if got.BONumber != "PD25|2041|4" {
		t.Errorf("BONumber = %q", got.BONumber)
	}
	if got.ClientName != "Gulf News Media" {
		t.Errorf("ClientName = %q", got.ClientName)
	}
	if got.ClientTRN != "1000414320003" {
		t.Errorf("ClientTRN = %q", got.ClientTRN)
	}
	if got.Empty() {
		t.Error("extraction should not be empty")
	}

	items := got.LineItems()
	if len(items) == 0 {
		t.Fatal("no line items")
	}
	if !strings.HasPrefix(items[0].Description, "Mixed Placement") {
		t.Errorf("first description = %q", items[0].Description)
	}
	if items[0].Quantity == nil || *items[0].Quantity != 5000 {
		t.Errorf("first quantity = %v", items[0].Quantity)
	}
	if items[0].Rate == nil || *items[0].Rate != 14 {
		t.Errorf("first rate = %v", items[0].Rate)
	}
}

func TestIsPDF(t *testing.T) {
	if !IsPDF([]byte("%PDF-1.7 rest")) {
		t.Error("PDF magic not recognized")
	}
	if IsPDF([]byte("plain text")) || IsPDF([]byte("%PD")) {
		t.Error("non-PDF recognized as PDF")
	}
}
