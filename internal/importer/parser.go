package importer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yufj-331/ordershare/internal/income"
	"github.com/yufj-331/ordershare/internal/invoice"
	"github.com/yufj-331/ordershare/internal/sales"
)

// dataRow is a non-blank row below the header with its 1-based line number.
type dataRow struct {
	line  int
	cells []string
}

func dataRows(rows [][]string, headerIdx int) []dataRow {
	var out []dataRow

	for i, row := range rows[headerIdx+1:] {
		if blank(row) {
			continue
		}

		out = append(out, dataRow{line: headerIdx + i + 2, cells: row})
	}

	return out
}

func warn(line int, field string, err error) string {
	return fmt.Sprintf("row %d: %s: %v", line, field, err)
}

func parseSales(rows [][]string) ([]sales.ImportRow, []string, error) {
	cols, headerIdx, err := salesProfile.locate(rows)
	if err != nil {
		return nil, nil, err
	}

	var (
		out      []sales.ImportRow
		warnings []string
	)

	for _, r := range dataRows(rows, headerIdx) {
		qty, err := parseInt(cols.cell(r.cells, "quantity"))
		if err != nil {
			warnings = append(warnings, warn(r.line, "quantity", err))
			continue
		}

		price, err := parseDecimal(cols.cell(r.cells, "price_per_unit"))
		if err != nil {
			warnings = append(warnings, warn(r.line, "price_per_unit", err))
			continue
		}

		out = append(out, sales.ImportRow{
			Line: r.line,
			Params: sales.CreateParams{
				ID:           cols.cell(r.cells, "id"),
				CustomerName: cols.cell(r.cells, "customer_name"),
				ProductName:  cols.cell(r.cells, "product_name"),
				Quantity:     qty,
				PricePerUnit: price,
			},
		})
	}

	return out, warnings, nil
}

func parseIncomes(rows [][]string) ([]income.ImportRow, []string, error) {
	cols, headerIdx, err := incomeProfile.locate(rows)
	if err != nil {
		return nil, nil, err
	}

	var (
		out      []income.ImportRow
		warnings []string
	)

	for _, r := range dataRows(rows, headerIdx) {
		amount, err := parseDecimal(cols.cell(r.cells, "amount"))
		if err != nil {
			warnings = append(warnings, warn(r.line, "amount", err))
			continue
		}

		params := income.CreateParams{
			SalesOrderID: cols.cell(r.cells, "sales_order_id"),
			BankOrBill:   cols.cell(r.cells, "bankorbill"),
			Amount:       amount,
		}

		if desc := cols.cell(r.cells, "description"); desc != "" {
			params.Description = &desc
		}

		out = append(out, income.ImportRow{Line: r.line, Params: params})
	}

	return out, warnings, nil
}

func parseInvoices(rows [][]string, loc *time.Location) ([]invoice.ImportRow, []string, error) {
	cols, headerIdx, err := invoiceProfile.locate(rows)
	if err != nil {
		return nil, nil, err
	}

	var (
		out      []invoice.ImportRow
		warnings []string
	)

	for _, r := range dataRows(rows, headerIdx) {
		date, err := parseDate(cols.cell(r.cells, "invoice_date"), loc)
		if err != nil {
			warnings = append(warnings, warn(r.line, "invoice_date", err))
			continue
		}

		amount, err := parseDecimal(cols.cell(r.cells, "amount"))
		if err != nil {
			warnings = append(warnings, warn(r.line, "amount", err))
			continue
		}

		var tax *decimal.Decimal

		if s := cols.cell(r.cells, "tax_amount"); s != "" {
			d, err := parseDecimal(s)
			if err != nil {
				warnings = append(warnings, warn(r.line, "tax_amount", err))
				continue
			}

			tax = &d
		}

		out = append(out, invoice.ImportRow{
			Line: r.line,
			Params: invoice.CreateParams{
				SalesOrderID:  cols.cell(r.cells, "sales_order_id"),
				InvoiceNumber: cols.cell(r.cells, "invoice_number"),
				InvoiceDate:   date,
				Amount:        amount,
				TaxAmount:     tax,
				InvoiceType:   cols.cell(r.cells, "invoice_type"),
			},
		})
	}

	return out, warnings, nil
}
