package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Snapshot is the read side of the customer's cart consumed by the checkout
// reconciler. Items always reads from the database so the reconciler
// re-validates against the cart as it stands at verification time.
type Snapshot interface {
	Items(ctx context.Context, customerID uint) ([]Line, error)
	Total(ctx context.Context, customerID uint) (decimal.Decimal, error)
	Clear(ctx context.Context, customerID uint) error
}

type snapshot struct {
	db *sql.DB
}

func NewSnapshot(db *sql.DB) Snapshot {
	return &snapshot{db: db}
}

// Items returns the current cart lines. An empty cart is an empty slice, not
// an error. Rows with a non-positive quantity count as quantity 1.
func (s *snapshot) Items(ctx context.Context, customerID uint) ([]Line, error) {
	query := `
		SELECT customer_id, product_id, quantity, unit_price, created_at
		FROM carts
		WHERE customer_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCartRows, err)
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.CustomerID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetCartRows, err)
		}
		if l.Quantity <= 0 {
			l.Quantity = 1
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCartRows, err)
	}

	return lines, nil
}

// Total is the authoritative cart total: the sum of line subtotals.
func (s *snapshot) Total(ctx context.Context, customerID uint) (decimal.Decimal, error) {
	lines, err := s.Items(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}

	return total, nil
}

// Clear deletes the customer's cart rows. Clearing an already-empty cart
// succeeds, so retried callbacks stay safe after the first one emptied it.
func (s *snapshot) Clear(ctx context.Context, customerID uint) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM carts WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return nil
}
