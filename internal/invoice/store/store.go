package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/yufj-331/ordershare/internal/invoice"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, sales_order_id, invoice_number, invoice_date, amount, tax_amount, invoice_type, created_at
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var (
		inv invoice.Invoice
		tax decimal.NullDecimal
		typ string
	)

	if err := s.Scan(
		&inv.ID, &inv.SalesOrderID, &inv.InvoiceNumber, &inv.InvoiceDate,
		&inv.Amount, &tax, &typ, &inv.CreatedAt,
	); err != nil {
		return nil, err
	}

	if tax.Valid {
		inv.TaxAmount = &tax.Decimal
	}

	inv.InvoiceType = invoice.Type(typ)

	return &inv, nil
}

const selectInvoiceColumns = `id, sales_order_id, invoice_number, invoice_date, amount, tax_amount, invoice_type, created_at`

func nullTax(tax *decimal.Decimal) decimal.NullDecimal {
	if tax == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: *tax, Valid: true}
}

func mapWriteErr(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return invoice.ErrDuplicateNumber
	}

	return fmt.Errorf("%s invoice order: %w", op, err)
}

func (s *Store) SaleExists(ctx context.Context, salesOrderID string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sales_orders WHERE id = $1)`, salesOrderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking sales order: %w", err)
	}

	return exists, nil
}

func (s *Store) NumberTaken(ctx context.Context, number string, excludeID int64) (bool, error) {
	var taken bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoice_orders WHERE invoice_number = $1 AND id <> $2)`,
		number, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("checking invoice number: %w", err)
	}

	return taken, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoice_orders (sales_order_id, invoice_number, invoice_date, amount, tax_amount, invoice_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.SalesOrderID,
		inv.InvoiceNumber,
		inv.InvoiceDate,
		inv.Amount,
		nullTax(inv.TaxAmount),
		string(inv.InvoiceType),
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return mapWriteErr(err, "creating")
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoice_orders WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice order: %w", err)
	}

	return inv, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoice_orders
		SET sales_order_id = $1, invoice_number = $2, invoice_date = $3,
		    amount = $4, tax_amount = $5, invoice_type = $6
		WHERE id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		inv.SalesOrderID,
		inv.InvoiceNumber,
		inv.InvoiceDate,
		inv.Amount,
		nullTax(inv.TaxAmount),
		string(inv.InvoiceType),
		inv.ID,
	)
	if err != nil {
		return mapWriteErr(err, "updating")
	}

	return requireAffected(res)
}

func (s *Store) DeleteInvoice(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoice_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice order: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoice_orders WHERE TRUE`

	var args []any

	add := func(clause string, v any) {
		args = append(args, v)
		query += fmt.Sprintf(clause, len(args))
	}

	if filter.SalesOrderID != nil {
		add(" AND sales_order_id = $%d", *filter.SalesOrderID)
	}

	if filter.InvoiceNumber != nil {
		add(" AND invoice_number LIKE '%%' || $%d || '%%'", *filter.InvoiceNumber)
	}

	if filter.InvoiceType != nil {
		add(" AND invoice_type = $%d", *filter.InvoiceType)
	}

	if filter.AmountMin != nil {
		add(" AND amount >= $%d", *filter.AmountMin)
	}

	if filter.AmountMax != nil {
		add(" AND amount <= $%d", *filter.AmountMax)
	}

	if filter.StartDate != nil {
		add(" AND created_at >= $%d", *filter.StartDate)
	}

	if filter.EndDate != nil {
		add(" AND created_at <= $%d", *filter.EndDate)
	}

	if filter.InvoiceDateStart != nil {
		add(" AND invoice_date >= $%d", *filter.InvoiceDateStart)
	}

	if filter.InvoiceDateEnd != nil {
		add(" AND invoice_date <= $%d", *filter.InvoiceDateEnd)
	}

	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoice orders: %w", err)
	}
	defer rows.Close()

	var out []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice order: %w", err)
		}

		out = append(out, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice orders: %w", err)
	}

	return out, nil
}
