package report

import (
	"context"

	"github.com/yufj-331/ordershare/internal/income"
	"github.com/yufj-331/ordershare/internal/invoice"
	"github.com/yufj-331/ordershare/internal/sales"
)

// ServiceSource reads the report inputs through the domain services.
type ServiceSource struct {
	Sales    *sales.Service
	Incomes  *income.Service
	Invoices *invoice.Service
}

func (s ServiceSource) FetchSales(ctx context.Context) ([]*sales.Sale, error) {
	return s.Sales.All(ctx)
}

func (s ServiceSource) FetchIncomes(ctx context.Context) ([]*income.Income, error) {
	return s.Incomes.All(ctx)
}

func (s ServiceSource) FetchInvoices(ctx context.Context) ([]*invoice.Invoice, error) {
	return s.Invoices.All(ctx)
}
