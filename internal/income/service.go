package income

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=income
type Repository interface {
	SaleExists(ctx context.Context, salesOrderID string) (bool, error)

	CreateIncome(ctx context.Context, in *Income) error
	GetIncome(ctx context.Context, id int64) (*Income, error)
	UpdateIncome(ctx context.Context, in *Income) error
	DeleteIncome(ctx context.Context, id int64) error
	ListIncomes(ctx context.Context, filter ListFilter) ([]*Income, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	SalesOrderID string
	BankOrBill   string
	Amount       decimal.Decimal
	Description  *string
}

// UpdateParams carries a partial update; nil fields are left unchanged.
type UpdateParams struct {
	SalesOrderID *string
	BankOrBill   *string
	Amount       *decimal.Decimal
	Description  *string
}

// ListFilter narrows ListIncomes. StartDate and EndDate bound created_at
// inclusively; Description is a substring match.
type ListFilter struct {
	SalesOrderID *string
	BankOrBill   *string
	Amount       *decimal.Decimal
	StartDate    *time.Time
	EndDate      *time.Time
	Description  *string
}

func (s *Service) requireSale(ctx context.Context, salesOrderID string) error {
	ok, err := s.repo.SaleExists(ctx, salesOrderID)
	if err != nil {
		return fmt.Errorf("checking sales order: %w", err)
	}

	if !ok {
		return fmt.Errorf("sales order %s: %w", salesOrderID, ErrSaleNotFound)
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Income, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if err := s.requireSale(ctx, params.SalesOrderID); err != nil {
		return nil, err
	}

	in := &Income{
		SalesOrderID: params.SalesOrderID,
		BankOrBill:   params.BankOrBill,
		Amount:       params.Amount,
		Description:  params.Description,
	}
	if err := s.repo.CreateIncome(ctx, in); err != nil {
		return nil, err
	}

	return in, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Income, error) {
	return s.repo.GetIncome(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Income, error) {
	return s.repo.ListIncomes(ctx, filter)
}

// All returns every income order without filtering.
func (s *Service) All(ctx context.Context) ([]*Income, error) {
	return s.repo.ListIncomes(ctx, ListFilter{})
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Income, error) {
	if params.Amount != nil && !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	in, err := s.repo.GetIncome(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.SalesOrderID != nil {
		if err := s.requireSale(ctx, *params.SalesOrderID); err != nil {
			return nil, err
		}

		in.SalesOrderID = *params.SalesOrderID
	}

	if params.BankOrBill != nil {
		in.BankOrBill = *params.BankOrBill
	}

	if params.Amount != nil {
		in.Amount = *params.Amount
	}

	if params.Description != nil {
		in.Description = params.Description
	}

	if err := s.repo.UpdateIncome(ctx, in); err != nil {
		return nil, err
	}

	return in, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteIncome(ctx, id)
}

// ImportRow is one parsed spreadsheet row; Line is its 1-based row number.
type ImportRow struct {
	Line   int
	Params CreateParams
}

type ImportResult struct {
	Imported []*Income
	Warnings []string
}

// Import creates one income order per row, skipping rows that fail
// validation, reference a missing sales order, or fail to persist.
func (s *Service) Import(ctx context.Context, rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{}

	for _, row := range rows {
		in, err := s.Create(ctx, row.Params)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("importing income orders: %w", ctx.Err())
			}

			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", row.Line, err))

			continue
		}

		result.Imported = append(result.Imported, in)
	}

	return result, nil
}
