package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yufj-331/ordershare/internal/income"
	"github.com/yufj-331/ordershare/internal/invoice"
	"github.com/yufj-331/ordershare/internal/sales"
)

// Source returns the full, unfiltered contents of each collection.
//
//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type Source interface {
	FetchSales(ctx context.Context) ([]*sales.Sale, error)
	FetchIncomes(ctx context.Context) ([]*income.Income, error)
	FetchInvoices(ctx context.Context) ([]*invoice.Invoice, error)
}

type Service struct {
	source Source
	loc    *time.Location
}

type Option func(*Service)

// WithLocation sets the zone used to turn timestamps into calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewService(source Source, opts ...Option) *Service {
	s := &Service{source: source, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Location is the zone calendar days are computed in.
func (s *Service) Location() *time.Location { return s.loc }

// Overview fetches all three collections and aggregates them under f.
func (s *Service) Overview(ctx context.Context, f Filter) ([]Row, error) {
	var (
		saleRecs    []*sales.Sale
		incomeRecs  []*income.Income
		invoiceRecs []*invoice.Invoice
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		saleRecs, err = s.source.FetchSales(gctx)
		if err != nil {
			return fmt.Errorf("fetching sales orders: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		incomeRecs, err = s.source.FetchIncomes(gctx)
		if err != nil {
			return fmt.Errorf("fetching income orders: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		invoiceRecs, err = s.source.FetchInvoices(gctx)
		if err != nil {
			return fmt.Errorf("fetching invoice orders: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Aggregate(saleRecs, incomeRecs, invoiceRecs, f, s.loc), nil
}

// Records is Overview rendered for serialization.
func (s *Service) Records(ctx context.Context, f Filter) ([]Record, error) {
	rows, err := s.Overview(ctx, f)
	if err != nil {
		return nil, err
	}

	return Records(rows), nil
}

// WriteSpreadsheet writes the same records Records returns as an xlsx workbook.
func (s *Service) WriteSpreadsheet(ctx context.Context, f Filter, w io.Writer) error {
	records, err := s.Records(ctx, f)
	if err != nil {
		return err
	}

	return WriteXLSX(w, records)
}
