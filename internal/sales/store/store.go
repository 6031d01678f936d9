package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yufj-331/ordershare/internal/sales"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, customer_name, product_name, quantity, price_per_unit, total_amount, created_at
func scanSale(s scanner) (*sales.Sale, error) {
	var sale sales.Sale
	if err := s.Scan(
		&sale.ID, &sale.CustomerName, &sale.ProductName, &sale.Quantity,
		&sale.PricePerUnit, &sale.TotalAmount, &sale.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &sale, nil
}

const selectSaleColumns = `id, customer_name, product_name, quantity, price_per_unit, total_amount, created_at`

func (s *Store) CreateSale(ctx context.Context, sale *sales.Sale) error {
	query := `
		INSERT INTO sales_orders (id, customer_name, product_name, quantity, price_per_unit, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sale.ID,
		sale.CustomerName,
		sale.ProductName,
		sale.Quantity,
		sale.PricePerUnit,
		sale.TotalAmount,
	).Scan(&sale.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sales.ErrDuplicateID
		}

		return fmt.Errorf("creating sales order: %w", err)
	}

	return nil
}

func (s *Store) GetSale(ctx context.Context, id string) (*sales.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales_orders WHERE id = $1`

	sale, err := scanSale(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sales.ErrNotFound
		}

		return nil, fmt.Errorf("getting sales order: %w", err)
	}

	return sale, nil
}

func (s *Store) UpdateSale(ctx context.Context, sale *sales.Sale) error {
	query := `
		UPDATE sales_orders
		SET customer_name = $1, product_name = $2, quantity = $3, price_per_unit = $4, total_amount = $5
		WHERE id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		sale.CustomerName,
		sale.ProductName,
		sale.Quantity,
		sale.PricePerUnit,
		sale.TotalAmount,
		sale.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sales order: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) DeleteSale(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sales_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting sales order: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return sales.ErrNotFound
	}

	return nil
}

func (s *Store) ListSales(ctx context.Context, filter sales.ListFilter) ([]*sales.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales_orders WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.ProductName != nil {
		if filter.ProductNameLike {
			query += fmt.Sprintf(" AND product_name LIKE '%%' || $%d || '%%'", argIdx)
		} else {
			query += fmt.Sprintf(" AND product_name = $%d", argIdx)
		}

		args = append(args, *filter.ProductName)
		argIdx++
	}

	if filter.CustomerName != nil {
		if filter.CustomerNameLike {
			query += fmt.Sprintf(" AND customer_name LIKE '%%' || $%d || '%%'", argIdx)
		} else {
			query += fmt.Sprintf(" AND customer_name = $%d", argIdx)
		}

		args = append(args, *filter.CustomerName)
		argIdx++
	}

	if filter.QuantityMin != nil {
		query += fmt.Sprintf(" AND quantity >= $%d", argIdx)

		args = append(args, *filter.QuantityMin)
		argIdx++
	}

	if filter.QuantityMax != nil {
		query += fmt.Sprintf(" AND quantity <= $%d", argIdx)

		args = append(args, *filter.QuantityMax)
		argIdx++
	}

	if filter.PriceMin != nil {
		query += fmt.Sprintf(" AND price_per_unit >= $%d", argIdx)

		args = append(args, *filter.PriceMin)
		argIdx++
	}

	if filter.PriceMax != nil {
		query += fmt.Sprintf(" AND price_per_unit <= $%d", argIdx)

		args = append(args, *filter.PriceMax)
		argIdx++
	}

	query += " ORDER BY created_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales orders: %w", err)
	}
	defer rows.Close()

	var out []*sales.Sale

	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sales order: %w", err)
		}

		out = append(out, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales orders: %w", err)
	}

	return out, nil
}
