package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sales
type Repository interface {
	CreateSale(ctx context.Context, s *Sale) error
	GetSale(ctx context.Context, id string) (*Sale, error)
	UpdateSale(ctx context.Context, s *Sale) error
	DeleteSale(ctx context.Context, id string) error
	ListSales(ctx context.Context, filter ListFilter) ([]*Sale, error)
}

type Service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, newID: generateID}
}

// generateID returns a random identifier that fits the sales_orders.id column.
func generateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:MaxIDLength]
}

type CreateParams struct {
	ID           string // optional, generated when empty
	CustomerName string
	ProductName  string
	Quantity     int
	PricePerUnit decimal.Decimal
}

type UpdateParams struct {
	CustomerName string
	ProductName  string
	Quantity     int
	PricePerUnit decimal.Decimal
}

// ListFilter narrows ListSales. Nil fields are not applied; the *Like flags
// switch the matching name filter from equality to substring.
type ListFilter struct {
	CustomerName     *string
	CustomerNameLike bool
	ProductName      *string
	ProductNameLike  bool
	QuantityMin      *int
	QuantityMax      *int
	PriceMin         *decimal.Decimal
	PriceMax         *decimal.Decimal
}

func validate(quantity int, price decimal.Decimal) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	if !price.IsPositive() {
		return ErrInvalidPrice
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Sale, error) {
	if err := validate(params.Quantity, params.PricePerUnit); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(params.ID)
	if id == "" {
		id = s.newID()
	}

	if len(id) > MaxIDLength {
		return nil, ErrInvalidID
	}

	sale := &Sale{
		ID:           id,
		CustomerName: params.CustomerName,
		ProductName:  params.ProductName,
		Quantity:     params.Quantity,
		PricePerUnit: params.PricePerUnit,
		TotalAmount:  Total(params.Quantity, params.PricePerUnit),
	}
	if err := s.repo.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Sale, error) {
	return s.repo.GetSale(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	return s.repo.ListSales(ctx, filter)
}

// All returns every sales order without filtering.
func (s *Service) All(ctx context.Context) ([]*Sale, error) {
	return s.repo.ListSales(ctx, ListFilter{})
}

// Update replaces the editable fields of a sales order and recomputes its total.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Sale, error) {
	if err := validate(params.Quantity, params.PricePerUnit); err != nil {
		return nil, err
	}

	sale, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	sale.CustomerName = params.CustomerName
	sale.ProductName = params.ProductName
	sale.Quantity = params.Quantity
	sale.PricePerUnit = params.PricePerUnit
	sale.TotalAmount = Total(params.Quantity, params.PricePerUnit)

	if err := s.repo.UpdateSale(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteSale(ctx, id)
}

// ImportRow is one parsed spreadsheet row. Line is the 1-based row number in
// the uploaded file, used in warnings.
type ImportRow struct {
	Line   int
	Params CreateParams
}

type ImportResult struct {
	Imported []*Sale
	Warnings []string
}

// Import creates one sales order per row. Rows that fail validation or
// persistence are skipped and reported in Warnings; the caller decides what
// an empty Imported means.
func (s *Service) Import(ctx context.Context, rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{}

	for _, row := range rows {
		sale, err := s.Create(ctx, row.Params)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("importing sales orders: %w", ctx.Err())
			}

			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", row.Line, err))

			continue
		}

		result.Imported = append(result.Imported, sale)
	}

	return result, nil
}
