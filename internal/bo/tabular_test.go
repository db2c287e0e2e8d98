package bo

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestFromCSV(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want map[string]string
	}{
		{
			name: "canonical headers",
			csv: "Client Name,BO Number,Description,Quantity,Rate\n" +
				"Gulf News,BO-2025-001,Homepage banner,5000,14\n",
			want: map[string]string{
				"client_name": "Gulf News",
				"bo_no":       "BO-2025-001",
				"description": "Homepage banner",
				"quantity":    "5000",
				"rate":        "14",
			},
		},
		{
			name: "lowercase alias headers",
			csv:  "customer,order_no,qty\nMBC Group,778,250\n",
			want: map[string]string{
				"client_name": "MBC Group",
				"bo_no":       "778",
				"quantity":    "250",
			},
		},
		{
			name: "unmatched headers yield nothing",
			csv:  "foo,bar\n1,2\n",
			want: map[string]string{},
		},
		{
			name: "header only yields nothing",
			csv:  "Client Name,Rate\n",
			want: map[string]string{},
		},
		{
			name: "blank cells are skipped",
			csv:  "Client Name,Rate\n,15\n",
			want: map[string]string{"rate": "15"},
		},
		{
			name: "ragged rows tolerated",
			csv:  "Client Name,Rate,Extra\nGulf News,15\n",
			want: map[string]string{"client_name": "Gulf News", "rate": "15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromCSV(strings.NewReader(tt.csv))
			if err != nil {
				t.Fatalf("FromCSV: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestFromWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Client Name", "TRN", "Description", "Quantity", "Rate"},
		{"Abu Dhabi Media", "100041432100003", "Video pre-roll", 5000, 14},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	got, err := FromWorkbook(buf.Bytes())
	if err != nil {
		t.Fatalf("FromWorkbook: %v", err)
	}

	want := map[string]string{
		"client_name": "Abu Dhabi Media",
		"client_trn":  "100041432100003",
		"description": "Video pre-roll",
		"quantity":    "5000",
		"rate":        "14",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestFromWorkbookRejectsGarbage(t *testing.T) {
	if _, err := FromWorkbook([]byte("not a zip archive")); err == nil {
		t.Error("expected error for non-xlsx input")
	}
}
