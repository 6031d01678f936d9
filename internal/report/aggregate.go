package report

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yufj-331/ordershare/internal/income"
	"github.com/yufj-331/ordershare/internal/invoice"
	"github.com/yufj-331/ordershare/internal/sales"
)

type saleEntry struct {
	id       string
	customer string
	product  string
	quantity int
	price    decimal.Decimal
	total    decimal.Decimal
	date     time.Time
}

type incomeEntry struct {
	amount decimal.Decimal
	date   time.Time
}

type invoiceEntry struct {
	number string
	amount decimal.Decimal
	tax    decimal.Decimal
}

// groupKey mirrors every sale-derived output column. Decimals are keyed by
// their canonical string so equal values with different scales collapse.
type groupKey struct {
	id       string
	customer string
	product  string
	quantity int
	price    string
	total    string
	date     time.Time
}

// Aggregate builds the overview rows. Sales are filtered, then each one
// collects the incomes and invoices that reference it. Timestamps are
// reduced to calendar days in loc.
func Aggregate(
	saleRecs []*sales.Sale,
	incomeRecs []*income.Income,
	invoiceRecs []*invoice.Invoice,
	f Filter,
	loc *time.Location,
) []Row {
	if loc == nil {
		loc = time.Local
	}

	incomesBySale := make(map[string][]incomeEntry)
	for _, in := range incomeRecs {
		if in == nil {
			continue
		}

		incomesBySale[in.SalesOrderID] = append(incomesBySale[in.SalesOrderID], incomeEntry{
			amount: in.Amount,
			date:   dayOf(in.CreatedAt, loc),
		})
	}

	invoicesBySale := make(map[string][]invoiceEntry)
	for _, inv := range invoiceRecs {
		if inv == nil {
			continue
		}

		e := invoiceEntry{number: inv.InvoiceNumber, amount: inv.Amount}
		if inv.TaxAmount != nil {
			e.tax = *inv.TaxAmount
		}

		invoicesBySale[inv.SalesOrderID] = append(invoicesBySale[inv.SalesOrderID], e)
	}

	var (
		entries []saleEntry
		seen    = make(map[groupKey]bool)
	)

	for _, s := range saleRecs {
		if s == nil {
			continue
		}

		e := saleEntry{
			id:       s.ID,
			customer: s.CustomerName,
			product:  s.ProductName,
			quantity: s.Quantity,
			price:    s.PricePerUnit,
			total:    s.TotalAmount,
			date:     dayOf(s.CreatedAt, loc),
		}

		if !f.matches(e) {
			continue
		}

		k := keyOf(e)
		if seen[k] {
			continue
		}

		seen[k] = true
		entries = append(entries, e)
	}

	slices.SortStableFunc(entries, compareEntries)

	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, buildRow(e, incomesBySale[e.id], invoicesBySale[e.id]))
	}

	return rows
}

func buildRow(s saleEntry, incomes []incomeEntry, invoices []invoiceEntry) Row {
	row := Row{
		ID:           s.id,
		CustomerName: s.customer,
		ProductName:  s.product,
		Quantity:     s.quantity,
		PricePerUnit: s.price,
		TotalAmount:  s.total,
		CreatedAt:    s.date,
	}

	var dates []string

	for _, in := range incomes {
		row.IncomeAmount = row.IncomeAmount.Add(in.amount)

		if !in.date.IsZero() {
			dates = append(dates, in.date.Format(DateLayout))
		}
	}

	var numbers []string

	for _, inv := range invoices {
		row.InvoiceAmount = row.InvoiceAmount.Add(inv.amount)
		row.TaxAmount = row.TaxAmount.Add(inv.tax)

		if inv.number != "" {
			numbers = append(numbers, inv.number)
		}
	}

	row.IncomeDates = strings.Join(dates, "\n")
	row.InvoiceNumbers = strings.Join(numbers, "\n")

	return row
}

// matches applies the predicates in order: customer, product, start date,
// end date, minimum total, maximum total. A sale without a date fails any
// date bound.
func (f Filter) matches(s saleEntry) bool {
	if f.CustomerName != nil && *f.CustomerName != "" && s.customer != *f.CustomerName {
		return false
	}

	if f.ProductName != nil && *f.ProductName != "" && s.product != *f.ProductName {
		return false
	}

	if f.DateStart != nil && (s.date.IsZero() || s.date.Before(calendarDay(*f.DateStart))) {
		return false
	}

	if f.DateEnd != nil && (s.date.IsZero() || s.date.After(calendarDay(*f.DateEnd))) {
		return false
	}

	if f.MinTotalAmount != nil && s.total.LessThan(*f.MinTotalAmount) {
		return false
	}

	if f.MaxTotalAmount != nil && s.total.GreaterThan(*f.MaxTotalAmount) {
		return false
	}

	return true
}

func keyOf(s saleEntry) groupKey {
	return groupKey{
		id:       s.id,
		customer: s.customer,
		product:  s.product,
		quantity: s.quantity,
		price:    s.price.String(),
		total:    s.total.String(),
		date:     s.date,
	}
}

// compareEntries orders groups by their key columns, id first.
func compareEntries(a, b saleEntry) int {
	if c := cmp.Compare(a.id, b.id); c != 0 {
		return c
	}

	if c := cmp.Compare(a.customer, b.customer); c != 0 {
		return c
	}

	if c := cmp.Compare(a.product, b.product); c != 0 {
		return c
	}

	if c := cmp.Compare(a.quantity, b.quantity); c != 0 {
		return c
	}

	if c := a.price.Cmp(b.price); c != 0 {
		return c
	}

	if c := a.total.Cmp(b.total); c != 0 {
		return c
	}

	return a.date.Compare(b.date)
}

// dayOf reduces t to its calendar day in loc. The zero time stays zero.
func dayOf(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	return calendarDay(t.In(loc))
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
