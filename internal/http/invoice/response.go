package invoice

import (
	"time"

	"github.com/yufj-331/ordershare/internal/invoice"
)

type invoiceResponse struct {
	ID            int64        `json:"id"`
	SalesOrderID  string       `json:"sales_order_id"`
	InvoiceNumber string       `json:"invoice_number"`
	InvoiceDate   string       `json:"invoice_date"`
	Amount        float64      `json:"amount"`
	TaxAmount     *float64     `json:"tax_amount"`
	InvoiceType   invoice.Type `json:"invoice_type"`
	CreatedAt     time.Time    `json:"created_at"`
}

// toResponse renders invoice_date as a calendar day in loc.
func toResponse(inv *invoice.Invoice, loc *time.Location) invoiceResponse {
	resp := invoiceResponse{
		ID:            inv.ID,
		SalesOrderID:  inv.SalesOrderID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate.In(loc).Format(time.DateOnly),
		Amount:        inv.Amount.InexactFloat64(),
		InvoiceType:   inv.InvoiceType,
		CreatedAt:     inv.CreatedAt,
	}

	if inv.TaxAmount != nil {
		resp.TaxAmount = new(inv.TaxAmount.InexactFloat64())
	}

	return resp
}

func toResponseList(list []*invoice.Invoice, loc *time.Location) []invoiceResponse {
	resp := make([]invoiceResponse, len(list))
	for i, inv := range list {
		resp[i] = toResponse(inv, loc)
	}

	return resp
}
