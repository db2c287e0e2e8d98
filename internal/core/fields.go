package core

type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumeric FieldType = "numeric"
	FieldDate    FieldType = "date"
)

// FieldSpec describes one invoice field and where it lives in the workbook
// template. A field may map to a single cell or to an ordered list of cells;
// multi-cell fields are joined/split by newline at the workbook boundary.
type FieldSpec struct {
	Key      string
	Label    string
	Sheet    string
	Cells    []string
	Type     FieldType
	ReadOnly bool
}

// InvoiceFields is the static field-to-cell mapping for the invoice template,
// in form display order.
var InvoiceFields = []FieldSpec{
	{Key: "invoice_no", Label: "Invoice No.", Sheet: "Invoice", Cells: []string{"F11"}, Type: FieldString},
	{Key: "client_name", Label: "Client Name", Sheet: "Invoice", Cells: []string{"C12"}, Type: FieldString},
	{Key: "client_address", Label: "Client Address", Sheet: "Invoice", Cells: []string{"C13", "C14", "C15"}, Type: FieldString},
	{Key: "client_trn", Label: "Client TRN No.", Sheet: "Invoice", Cells: []string{"C16"}, Type: FieldString},
	{Key: "date", Label: "Date", Sheet: "Invoice", Cells: []string{"F12"}, Type: FieldDate},
	{Key: "due_date", Label: "Due Date", Sheet: "Invoice", Cells: []string{"F13"}, Type: FieldDate},
	{Key: "bo_no", Label: "BO No.", Sheet: "Invoice", Cells: []string{"F15"}, Type: FieldString},
	{Key: "delivery_month", Label: "Delivery Month", Sheet: "Invoice", Cells: []string{"F16"}, Type: FieldString},
	{Key: "description", Label: "Description", Sheet: "Invoice", Cells: []string{"C21"}, Type: FieldString},
	{Key: "quantity", Label: "Quantity", Sheet: "Invoice", Cells: []string{"D21"}, Type: FieldNumeric},
	{Key: "rate", Label: "Rate", Sheet: "Invoice", Cells: []string{"E21"}, Type: FieldNumeric},
	{Key: "budget", Label: "Budget", Sheet: "Invoice", Cells: []string{"F21", "F25"}, Type: FieldNumeric},
	{Key: "vat_rate", Label: "VAT Rate (%)", Sheet: "Invoice", Cells: []string{"E26"}, Type: FieldNumeric},
	{Key: "vat_amount", Label: "VAT Amount", Sheet: "Invoice", Cells: []string{"F26"}, Type: FieldNumeric},
	{Key: "total_amount", Label: "Total Amount", Sheet: "Invoice", Cells: []string{"F27"}, Type: FieldNumeric, ReadOnly: true},
	{Key: "total_in_words", Label: "Total in Words", Sheet: "Invoice", Cells: []string{"C28"}, Type: FieldString},
}

// FieldByKey returns the FieldSpec for key and whether it exists.
func FieldByKey(key string) (FieldSpec, bool) {
	for _, f := range InvoiceFields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// InvoiceForm is the transient union of all field values keyed by field key.
// It is rebuilt on every form render and written to the workbook on save.
type InvoiceForm map[string]string

// requiredFields must be non-empty before an invoice can be saved.
var requiredFields = []string{"invoice_no", "client_name", "date"}

// numericMinimums holds the lower bound for numeric fields. No field has an
// upper bound.
var numericMinimums = map[string]float64{
	"quantity": 0,
	"rate":     0,
	"budget":   0,
}

// allowedVATRates are the only VAT percentages accepted: 0% for non-GCC
// invoices, 5% for GCC.
var allowedVATRates = []int{0, 5}
