package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	SaleExists(ctx context.Context, salesOrderID string) (bool, error)
	// NumberTaken reports whether another invoice (other than excludeID) uses number.
	NumberTaken(ctx context.Context, number string, excludeID int64) (bool, error)

	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id int64) error
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces the time source used for the future-date check.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	SalesOrderID  string
	InvoiceNumber string
	InvoiceDate   time.Time
	Amount        decimal.Decimal
	TaxAmount     *decimal.Decimal
	InvoiceType   string
}

// UpdateParams carries a partial update; nil fields are left unchanged.
type UpdateParams struct {
	SalesOrderID  *string
	InvoiceNumber *string
	InvoiceDate   *time.Time
	Amount        *decimal.Decimal
	TaxAmount     *decimal.Decimal
	InvoiceType   *string
}

type ListFilter struct {
	SalesOrderID     *string
	InvoiceNumber    *string // substring
	InvoiceType      *string
	AmountMin        *decimal.Decimal
	AmountMax        *decimal.Decimal
	StartDate        *time.Time // created_at
	EndDate          *time.Time
	InvoiceDateStart *time.Time
	InvoiceDateEnd   *time.Time
}

func (s *Service) validate(inv *Invoice) error {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return ErrEmptyNumber
	}

	if inv.InvoiceDate.After(s.now()) {
		return ErrFutureDate
	}

	if !inv.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if inv.TaxAmount != nil && inv.TaxAmount.IsNegative() {
		return ErrInvalidTax
	}

	if _, err := ParseType(string(inv.InvoiceType)); err != nil {
		return fmt.Errorf("%q: %w", inv.InvoiceType, err)
	}

	return nil
}

func (s *Service) checkReferences(ctx context.Context, inv *Invoice) error {
	ok, err := s.repo.SaleExists(ctx, inv.SalesOrderID)
	if err != nil {
		return fmt.Errorf("checking sales order: %w", err)
	}

	if !ok {
		return fmt.Errorf("sales order %s: %w", inv.SalesOrderID, ErrSaleNotFound)
	}

	taken, err := s.repo.NumberTaken(ctx, inv.InvoiceNumber, inv.ID)
	if err != nil {
		return fmt.Errorf("checking invoice number: %w", err)
	}

	if taken {
		return fmt.Errorf("invoice number %s: %w", inv.InvoiceNumber, ErrDuplicateNumber)
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	inv := &Invoice{
		SalesOrderID:  params.SalesOrderID,
		InvoiceNumber: strings.TrimSpace(params.InvoiceNumber),
		InvoiceDate:   params.InvoiceDate,
		Amount:        params.Amount,
		TaxAmount:     params.TaxAmount,
		InvoiceType:   Type(params.InvoiceType),
	}

	if err := s.validate(inv); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) All(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, ListFilter{})
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.SalesOrderID != nil {
		inv.SalesOrderID = *params.SalesOrderID
	}

	if params.InvoiceNumber != nil {
		inv.InvoiceNumber = strings.TrimSpace(*params.InvoiceNumber)
	}

	if params.InvoiceDate != nil {
		inv.InvoiceDate = *params.InvoiceDate
	}

	if params.Amount != nil {
		inv.Amount = *params.Amount
	}

	if params.TaxAmount != nil {
		inv.TaxAmount = params.TaxAmount
	}

	if params.InvoiceType != nil {
		inv.InvoiceType = Type(*params.InvoiceType)
	}

	if err := s.validate(inv); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteInvoice(ctx, id)
}

type ImportRow struct {
	Line   int
	Params CreateParams
}

type ImportResult struct {
	Imported []*Invoice
	Warnings []string
}

// Import applies the Create checks row by row. Numbers repeated within the
// same batch are caught by NumberTaken once the first copy is stored.
func (s *Service) Import(ctx context.Context, rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{}

	for _, row := range rows {
		inv, err := s.Create(ctx, row.Params)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("importing invoice orders: %w", ctx.Err())
			}

			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", row.Line, err))

			continue
		}

		result.Imported = append(result.Imported, inv)
	}

	return result, nil
}
