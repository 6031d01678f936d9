package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yufj-331/ordershare/internal/income"
	"github.com/yufj-331/ordershare/internal/invoice"
	"github.com/yufj-331/ordershare/internal/report"
	"github.com/yufj-331/ordershare/internal/sales"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func sale(id, customer string, qty int, price int64, created time.Time) *sales.Sale {
	p := decimal.NewFromInt(price)

	return &sales.Sale{
		ID:           id,
		CustomerName: customer,
		ProductName:  "Widget",
		Quantity:     qty,
		PricePerUnit: p,
		TotalAmount:  sales.Total(qty, p),
		CreatedAt:    created,
	}
}

func incomeFor(saleID string, amount int64, created time.Time) *income.Income {
	return &income.Income{SalesOrderID: saleID, BankOrBill: "bank", Amount: decimal.NewFromInt(amount), CreatedAt: created}
}

func invoiceFor(saleID, number string, amount int64, tax *decimal.Decimal) *invoice.Invoice {
	return &invoice.Invoice{
		SalesOrderID:  saleID,
		InvoiceNumber: number,
		Amount:        decimal.NewFromInt(amount),
		TaxAmount:     tax,
		InvoiceType:   invoice.TypeVAT,
	}
}

func TestAggregate_WorkedExample(t *testing.T) {
	rows := report.Aggregate(
		[]*sales.Sale{sale("S1", "Acme", 2, 10, day(2024, 3, 1))},
		[]*income.Income{incomeFor("S1", 15, day(2024, 3, 2)), incomeFor("S1", 5, day(2024, 3, 3))},
		nil,
		report.Filter{},
		time.UTC,
	)

	require.Len(t, rows, 1)

	rec := rows[0].Record()
	assert.Equal(t, "S1", rec.ID)
	assert.Equal(t, 20.0, rec.TotalAmount)
	assert.Equal(t, 20.0, rec.IncomeAmount)
	assert.Equal(t, "2024-03-02\n2024-03-03", rec.IncomeDates)
	assert.Equal(t, "", rec.InvoiceNumbers)
	assert.Equal(t, 0.0, rec.InvoiceAmount)
	assert.Equal(t, 0.0, rec.TaxAmount)
	assert.Equal(t, "2024-03-01", rec.CreatedAt)
}

func TestAggregate_NoCrossProductDuplication(t *testing.T) {
	rows := report.Aggregate(
		[]*sales.Sale{sale("S1", "Acme", 1, 100, day(2024, 3, 1))},
		[]*income.Income{incomeFor("S1", 30, day(2024, 3, 2)), incomeFor("S1", 70, day(2024, 3, 4))},
		[]*invoice.Invoice{invoiceFor("S1", "INV-1", 100, new(decimal.NewFromInt(13)))},
		report.Filter{},
		time.UTC,
	)

	require.Len(t, rows, 1)
	assert.True(t, rows[0].IncomeAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "INV-1", rows[0].InvoiceNumbers)
	assert.True(t, rows[0].InvoiceAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, rows[0].TaxAmount.Equal(decimal.NewFromInt(13)))
}

func TestAggregate_OneRowPerSale(t *testing.T) {
	saleRecs := []*sales.Sale{
		sale("S3", "Globex", 1, 5, day(2024, 1, 3)),
		sale("S1", "Acme", 2, 10, day(2024, 1, 1)),
		sale("S2", "Acme", 3, 10, day(2024, 1, 2)),
	}

	rows := report.Aggregate(
		saleRecs,
		[]*income.Income{incomeFor("S2", 1, day(2024, 1, 5)), incomeFor("S9", 1, day(2024, 1, 5))},
		[]*invoice.Invoice{
			invoiceFor("S2", "A", 10, nil),
			invoiceFor("S2", "B", 20, new(decimal.NewFromInt(2))),
			invoiceFor("S3", "", 5, nil),
		},
		report.Filter{},
		time.UTC,
	)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"S1", "S2", "S3"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})

	assert.Equal(t, "A\nB", rows[1].InvoiceNumbers)
	assert.True(t, rows[1].InvoiceAmount.Equal(decimal.NewFromInt(30)))
	assert.True(t, rows[1].TaxAmount.Equal(decimal.NewFromInt(2)))

	assert.Equal(t, "", rows[2].InvoiceNumbers)
	assert.True(t, rows[2].InvoiceAmount.Equal(decimal.NewFromInt(5)))
}

func TestAggregate_SaleWithoutMatches(t *testing.T) {
	rows := report.Aggregate([]*sales.Sale{sale("S1", "Acme", 1, 1, day(2024, 1, 1))}, nil, nil, report.Filter{}, time.UTC)

	require.Len(t, rows, 1)

	rec := rows[0].Record()
	assert.Equal(t, "", rec.IncomeDates)
	assert.Equal(t, "", rec.InvoiceNumbers)
	assert.Zero(t, rec.IncomeAmount)
	assert.Zero(t, rec.InvoiceAmount)
	assert.Zero(t, rec.TaxAmount)
}

func TestAggregate_Filters(t *testing.T) {
	saleRecs := []*sales.Sale{
		sale("S1", "Acme", 1, 10, day(2024, 1, 1)),
		sale("S2", "Acme Corp", 1, 20, day(2024, 1, 2)),
		sale("S3", "Globex", 1, 30, day(2024, 1, 3)),
		sale("S4", "Acme", 1, 40, time.Time{}),
	}

	tests := []struct {
		name   string
		filter report.Filter
		want   []string
	}{
		{
			name:   "NoFilter",
			filter: report.Filter{},
			want:   []string{"S1", "S2", "S3", "S4"},
		},
		{
			name:   "CustomerExact",
			filter: report.Filter{CustomerName: new("Acme")},
			want:   []string{"S1", "S4"},
		},
		{
			name:   "EmptyCustomerIgnored",
			filter: report.Filter{CustomerName: new("")},
			want:   []string{"S1", "S2", "S3", "S4"},
		},
		{
			name:   "ProductMismatch",
			filter: report.Filter{ProductName: new("Gadget")},
			want:   nil,
		},
		{
			name:   "DateRangeInclusive",
			filter: report.Filter{DateStart: new(day(2024, 1, 2)), DateEnd: new(day(2024, 1, 3))},
			want:   []string{"S2", "S3"},
		},
		{
			name:   "InvertedDateRange",
			filter: report.Filter{DateStart: new(day(2024, 1, 3)), DateEnd: new(day(2024, 1, 1))},
			want:   nil,
		},
		{
			name: "TotalRangeInclusive",
			filter: report.Filter{
				MinTotalAmount: new(decimal.NewFromInt(20)),
				MaxTotalAmount: new(decimal.NewFromInt(30)),
			},
			want: []string{"S2", "S3"},
		},
		{
			name: "InvertedTotalRange",
			filter: report.Filter{
				MinTotalAmount: new(decimal.NewFromInt(30)),
				MaxTotalAmount: new(decimal.NewFromInt(20)),
			},
			want: nil,
		},
		{
			name: "Combined",
			filter: report.Filter{
				CustomerName:   new("Acme"),
				MinTotalAmount: new(decimal.NewFromInt(5)),
				DateEnd:        new(day(2024, 12, 31)),
			},
			want: []string{"S1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := report.Aggregate(saleRecs, nil, nil, tt.filter, time.UTC)

			var got []string
			for _, r := range rows {
				got = append(got, r.ID)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate_UnsetDates(t *testing.T) {
	rows := report.Aggregate(
		[]*sales.Sale{sale("S1", "Acme", 1, 10, time.Time{})},
		[]*income.Income{incomeFor("S1", 4, time.Time{}), incomeFor("S1", 6, day(2024, 2, 1))},
		nil,
		report.Filter{},
		time.UTC,
	)

	require.Len(t, rows, 1)

	rec := rows[0].Record()
	assert.Equal(t, "", rec.CreatedAt)
	assert.Equal(t, "2024-02-01", rec.IncomeDates)
	assert.Equal(t, 10.0, rec.IncomeAmount)
}

func TestAggregate_Location(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*60*60)
	created := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)

	rows := report.Aggregate([]*sales.Sale{sale("S1", "Acme", 1, 1, created)}, nil, nil, report.Filter{
		DateStart: new(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
	}, shanghai)

	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-02", rows[0].Record().CreatedAt)
}

func TestRecord_ValuesOrder(t *testing.T) {
	rec := report.Record{ID: "S1", Quantity: 2, InvoiceNumbers: "A"}

	values := rec.Values()
	require.Len(t, values, len(report.Columns))
	assert.Equal(t, "S1", values[0])
	assert.Equal(t, 2, values[3])
	assert.Equal(t, "A", values[9])
}
