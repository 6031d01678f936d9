package invoice

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("invoice order not found")
	ErrSaleNotFound    = errors.New("sales order does not exist")
	ErrDuplicateNumber = errors.New("invoice number already exists")
	ErrEmptyNumber     = errors.New("invoice number must not be empty")
	ErrFutureDate      = errors.New("invoice date must not be in the future")
	ErrInvalidAmount   = errors.New("amount must be greater than 0")
	ErrInvalidTax      = errors.New("tax amount must not be negative")
	ErrInvalidType     = errors.New("invalid invoice type")
	ErrNothingImported = errors.New("no invoice orders were imported")
)

type Type string

const (
	TypeOrdinary Type = "普通发票"
	TypeVAT      Type = "增值税发票"
)

var validTypes = map[Type]bool{
	TypeOrdinary: true,
	TypeVAT:      true,
}

// ParseType rejects anything outside the known invoice kinds.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !validTypes[t] {
		return "", ErrInvalidType
	}

	return t, nil
}

// Invoice is a fiscal invoice issued against a sales order.
type Invoice struct {
	ID            int64
	SalesOrderID  string
	InvoiceNumber string
	InvoiceDate   time.Time
	Amount        decimal.Decimal
	TaxAmount     *decimal.Decimal // nil when not recorded
	InvoiceType   Type
	CreatedAt     time.Time
}
