package bo

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages bounds text extraction to the first few pages; BO documents
// put everything relevant up front.
const maxPDFPages = 5

// IsPDF checks the %PDF- magic bytes.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}

// ExtractText pulls plain text from the first maxPDFPages pages of a PDF.
// Pages whose text extraction fails (image-only pages, odd encodings) are
// skipped rather than failing the document.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	pages := reader.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var parts []string
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
