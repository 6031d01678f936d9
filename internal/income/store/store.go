package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yufj-331/ordershare/internal/income"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, sales_order_id, bankorbill, amount, description, created_at
func scanIncome(s scanner) (*income.Income, error) {
	var in income.Income

	var desc sql.NullString

	if err := s.Scan(&in.ID, &in.SalesOrderID, &in.BankOrBill, &in.Amount, &desc, &in.CreatedAt); err != nil {
		return nil, err
	}

	if desc.Valid {
		in.Description = &desc.String
	}

	return &in, nil
}

const selectIncomeColumns = `id, sales_order_id, bankorbill, amount, description, created_at`

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

func (s *Store) CreateIncome(ctx context.Context, in *income.Income) error {
	query := `
		INSERT INTO income_orders (sales_order_id, bankorbill, amount, description, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		in.SalesOrderID,
		in.BankOrBill,
		in.Amount,
		in.Description,
	).Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating income order: %w", err)
	}

	return nil
}

func (s *Store) GetIncome(ctx context.Context, id int64) (*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + ` FROM income_orders WHERE id = $1`

	in, err := scanIncome(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, income.ErrNotFound
		}

		return nil, fmt.Errorf("getting income order: %w", err)
	}

	return in, nil
}

func (s *Store) UpdateIncome(ctx context.Context, in *income.Income) error {
	query := `
		UPDATE income_orders
		SET sales_order_id = $1, bankorbill = $2, amount = $3, description = $4
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query, in.SalesOrderID, in.BankOrBill, in.Amount, in.Description, in.ID)
	if err != nil {
		return fmt.Errorf("updating income order: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) DeleteIncome(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM income_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting income order: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return income.ErrNotFound
	}

	return nil
}

func (s *Store) ListIncomes(ctx context.Context, filter income.ListFilter) ([]*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + ` FROM income_orders WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.SalesOrderID != nil {
		query += fmt.Sprintf(" AND sales_order_id = $%d", argIdx)

		args = append(args, *filter.SalesOrderID)
		argIdx++
	}

	if filter.BankOrBill != nil {
		query += fmt.Sprintf(" AND bankorbill = $%d", argIdx)

		args = append(args, *filter.BankOrBill)
		argIdx++
	}

	if filter.Amount != nil {
		query += fmt.Sprintf(" AND amount = $%d", argIdx)

		args = append(args, *filter.Amount)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Description != nil {
		query += fmt.Sprintf(" AND description LIKE '%%' || $%d || '%%'", argIdx)

		args = append(args, *filter.Description)
		argIdx++
	}

	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing income orders: %w", err)
	}
	defer rows.Close()

	var out []*income.Income

	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning income order: %w", err)
		}

		out = append(out, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating income orders: %w", err)
	}

	return out, nil
}
