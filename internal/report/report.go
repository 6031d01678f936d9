package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date form used by filters and rendered records.
const DateLayout = "2006-01-02"

// Columns is the emitted column order for both the JSON and spreadsheet forms.
var Columns = []string{
	"id",
	"customer_name",
	"product_name",
	"quantity",
	"price_per_unit",
	"total_amount",
	"created_at_x",
	"created_at_y",
	"amount_x",
	"invoice_number",
	"amount_y",
	"tax_amount",
}

// Filter narrows the sales side of the report. Nil fields impose no
// constraint; bounds are inclusive and never checked for consistency.
type Filter struct {
	CustomerName   *string
	ProductName    *string
	DateStart      *time.Time
	DateEnd        *time.Time
	MinTotalAmount *decimal.Decimal
	MaxTotalAmount *decimal.Decimal
}

// Row is one aggregated sales order. Dates are calendar days at UTC
// midnight; a zero CreatedAt means the value was unset.
type Row struct {
	ID           string
	CustomerName string
	ProductName  string
	Quantity     int
	PricePerUnit decimal.Decimal
	TotalAmount  decimal.Decimal
	CreatedAt    time.Time

	IncomeDates    string // newline-joined income creation dates
	IncomeAmount   decimal.Decimal
	InvoiceNumbers string // newline-joined invoice numbers
	InvoiceAmount  decimal.Decimal
	TaxAmount      decimal.Decimal
}

// Record is the rendered form of a Row shared by every output format.
type Record struct {
	ID             string  `json:"id"`
	CustomerName   string  `json:"customer_name"`
	ProductName    string  `json:"product_name"`
	Quantity       int     `json:"quantity"`
	PricePerUnit   float64 `json:"price_per_unit"`
	TotalAmount    float64 `json:"total_amount"`
	CreatedAt      string  `json:"created_at_x"`
	IncomeDates    string  `json:"created_at_y"`
	IncomeAmount   float64 `json:"amount_x"`
	InvoiceNumbers string  `json:"invoice_number"`
	InvoiceAmount  float64 `json:"amount_y"`
	TaxAmount      float64 `json:"tax_amount"`
}

func (r Row) Record() Record {
	return Record{
		ID:             r.ID,
		CustomerName:   r.CustomerName,
		ProductName:    r.ProductName,
		Quantity:       r.Quantity,
		PricePerUnit:   r.PricePerUnit.InexactFloat64(),
		TotalAmount:    r.TotalAmount.InexactFloat64(),
		CreatedAt:      formatDate(r.CreatedAt),
		IncomeDates:    r.IncomeDates,
		IncomeAmount:   r.IncomeAmount.InexactFloat64(),
		InvoiceNumbers: r.InvoiceNumbers,
		InvoiceAmount:  r.InvoiceAmount.InexactFloat64(),
		TaxAmount:      r.TaxAmount.InexactFloat64(),
	}
}

// Values returns the record's fields in Columns order.
func (r Record) Values() []any {
	return []any{
		r.ID,
		r.CustomerName,
		r.ProductName,
		r.Quantity,
		r.PricePerUnit,
		r.TotalAmount,
		r.CreatedAt,
		r.IncomeDates,
		r.IncomeAmount,
		r.InvoiceNumbers,
		r.InvoiceAmount,
		r.TaxAmount,
	}
}

func Records(rows []Row) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record())
	}

	return out
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}

	return d.Format(DateLayout)
}
