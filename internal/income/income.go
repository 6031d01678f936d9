package income

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("income order not found")
	ErrSaleNotFound    = errors.New("sales order does not exist")
	ErrInvalidAmount   = errors.New("amount must be greater than 0")
	ErrNothingImported = errors.New("no income orders were imported")
)

// Income is a payment received against a sales order.
type Income struct {
	ID           int64
	SalesOrderID string
	BankOrBill   string // payment instrument label
	Amount       decimal.Decimal
	Description  *string
	CreatedAt    time.Time
}
