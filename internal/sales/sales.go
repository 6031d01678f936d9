package sales

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("sales order not found")
	ErrDuplicateID     = errors.New("sales order id already exists")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrInvalidPrice    = errors.New("price_per_unit must be greater than 0")
	ErrInvalidID       = errors.New("sales order id must be at most 16 characters")
	ErrNothingImported = errors.New("no valid sales orders were imported")
)

// MaxIDLength is the width of the sales_orders.id column.
const MaxIDLength = 16

// Sale is a sales order, the primary record of the overview report.
type Sale struct {
	ID           string
	CustomerName string
	ProductName  string
	Quantity     int
	PricePerUnit decimal.Decimal
	TotalAmount  decimal.Decimal // Quantity * PricePerUnit
	CreatedAt    time.Time
}

// Total returns quantity times unit price.
func Total(quantity int, pricePerUnit decimal.Decimal) decimal.Decimal {
	return pricePerUnit.Mul(decimal.NewFromInt(int64(quantity)))
}
