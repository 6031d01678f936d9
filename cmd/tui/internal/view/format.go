package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yufj-331/ordershare/internal/report"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders a money value with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDate formats a calendar day, leaving unset dates blank.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(report.DateLayout)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
