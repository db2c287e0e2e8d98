// Command verify-template checks that the invoice template exists and prints
// the current value of every mapped cell. Useful after editing the template.
package main

import (
	"fmt"
	"log"
	"os"

	"invoice-automation/internal/core"
	"invoice-automation/internal/workbook"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	templateFile := os.Getenv("TEMPLATE_FILE")
	if templateFile == "" {
		templateFile = "invoice_template.xlsx"
	}
	if len(os.Args) > 1 {
		templateFile = os.Args[1]
	}

	wb, err := workbook.Load(templateFile, ".")
	if err != nil {
		log.Fatalf("template: %v", err)
	}
	defer wb.Close()

	fmt.Printf("Template: %s\n\n", templateFile)
	fmt.Printf("%-20s %-16s %s\n", "FIELD", "CELLS", "VALUE")
	for _, spec := range core.InvoiceFields {
		value, err := wb.ReadField(spec.Key)
		if err != nil {
			value = "(error: " + err.Error() + ")"
		}
		cells := ""
		for i, c := range spec.Cells {
			if i > 0 {
				cells += ","
			}
			cells += c
		}
		fmt.Printf("%-20s %-16s %q\n", spec.Key, cells, value)
	}
}
