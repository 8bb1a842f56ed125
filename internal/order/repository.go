package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// Create persists the order header and all of its lines in one transaction.
// Either everything commits or nothing does.
func (r *repo) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, created_at, full_name, email, address, city, postal_code, total)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.CreatedAt, o.FullName, o.Email, o.Address, o.City, o.PostalCode, o.Total,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, line := range o.Lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_lines (id, order_id, position, product_id, product_name, category, unit_price, quantity)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.NewString(), o.ID, i, line.ProductID, line.ProductName, line.Category, line.UnitPrice, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order_line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at, full_name, email, address, city, postal_code, total
         FROM orders WHERE id = $1`,
		orderID,
	).Scan(&o.ID, &o.CreatedAt, &o.FullName, &o.Email, &o.Address, &o.City, &o.PostalCode, &o.Total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, product_name, category, unit_price, quantity
         FROM order_lines WHERE order_id = $1 ORDER BY position`,
		o.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Category, &line.UnitPrice, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan order_line: %w", err)
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return &o, nil
}
