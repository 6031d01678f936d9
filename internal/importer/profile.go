package importer

import "strings"

// Profile describes the columns one import kind reads by header name.
type Profile struct {
	Name     string
	Required []string
	Optional []string
}

var (
	salesProfile = Profile{
		Name:     "sales",
		Required: []string{"customer_name", "product_name", "quantity", "price_per_unit"},
		Optional: []string{"id"},
	}
	incomeProfile = Profile{
		Name:     "income",
		Required: []string{"sales_order_id", "bankorbill", "amount"},
		Optional: []string{"description"},
	}
	invoiceProfile = Profile{
		Name:     "invoice",
		Required: []string{"sales_order_id", "invoice_number", "invoice_date", "amount", "invoice_type"},
		Optional: []string{"tax_amount"},
	}
)

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func headerIndex(row []string) colIndex {
	cols := make(colIndex)

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, seen := cols[name]; name != "" && !seen {
			cols[name] = i
		}
	}

	return cols
}

func (p Profile) missing(cols colIndex) []string {
	var out []string

	for _, name := range p.Required {
		if _, ok := cols[name]; !ok {
			out = append(out, name)
		}
	}

	return out
}

// locate returns the header map and the 0-based header row: the first
// non-empty row. Required columns must all be present in it.
func (p Profile) locate(rows [][]string) (colIndex, int, error) {
	for rowIdx, row := range rows {
		cols := headerIndex(row)
		if len(cols) == 0 {
			continue
		}

		if missing := p.missing(cols); len(missing) > 0 {
			return nil, 0, &MissingColumnsError{Columns: missing}
		}

		return cols, rowIdx, nil
	}

	return nil, 0, ErrNoHeader
}

// cell gets a trimmed cell value by column name, "" when absent.
func (c colIndex) cell(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
