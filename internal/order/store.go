package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"checkout-be/internal/logger"
	"checkout-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const invoiceRetryLimit = 3

// Store is the persistence boundary for orders. CreateOrderWithPayment is the
// sole concurrency-control point of the checkout flow: one transaction, backed
// by the unique constraint on payments.reference, so two concurrent callbacks
// with the same reference produce exactly one order+payment pair.
type Store interface {
	CreateOrderWithPayment(ctx context.Context, params CreateOrderParams) (*Confirmation, error)
	GetOrderByReference(ctx context.Context, reference string) (*Order, error)
	SaveWebhookEvent(
		ctx context.Context,
		provider string,
		eventID string,
		reference string,
		payload json.RawMessage,
		signatureValid bool,
	) (webhookID int64, isDuplicate bool, err error)
}

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) CreateOrderWithPayment(ctx context.Context, p CreateOrderParams) (*Confirmation, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("reference", p.Reference),
		zap.Uint("customer_id", p.CustomerID),
	)

	if len(p.Lines) == 0 {
		return nil, ErrNoLines
	}

	// Idempotency guard: a reference that already has a recorded payment maps
	// to the existing order, so retried callbacks never create duplicates.
	if existing, err := s.confirmationByReference(ctx, p.Reference); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	} else if existing != nil {
		log.Info("Reference already reconciled, returning existing order",
			zap.Uint("order_id", existing.OrderID))
		existing.AlreadyProcessed = true
		return existing, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	defer tx.Rollback()

	// 1. Order header with a generated unique invoice number.
	invoiceNo, err := s.pickInvoiceNumber(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	var orderID uint
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			customer_id, invoice_number, total_amount, currency,
			shipping_address, payment_method, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id
	`,
		p.CustomerID,
		invoiceNo,
		p.TotalAmount,
		p.Currency,
		p.ShippingAddress,
		p.PaymentMethod,
		StatusPending,
	).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: insert order: %v", ErrOrderCreationFailed, err)
	}

	// 2. Order items, snapshotting unit price from the cart lines.
	for _, line := range p.Lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, orderID, line.ProductID, qty, line.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: insert order item: %v", ErrOrderCreationFailed, err)
		}
	}

	// 3. Payment row; the unique constraint on reference is what loses the
	// race for concurrent callbacks.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO payments (
			order_id, customer_id, reference, amount, currency,
			payment_method, channel, authorization_code, paid_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`,
		orderID,
		p.CustomerID,
		p.Reference,
		p.TotalAmount,
		p.Currency,
		p.PaymentMethod,
		p.Channel,
		p.AuthorizationCode,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Another callback committed first. Roll back and return the
			// winner's order.
			tx.Rollback()
			return s.loseRace(ctx, p.Reference)
		}
		return nil, fmt.Errorf("%w: insert payment: %v", ErrOrderCreationFailed, err)
	}

	// 4. Payment recorded, the order is complete.
	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2
	`, StatusCompleted, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: update order status: %v", ErrOrderCreationFailed, err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return s.loseRace(ctx, p.Reference)
		}
		return nil, fmt.Errorf("%w: commit: %v", ErrOrderCreationFailed, err)
	}

	log.Info("Order materialized",
		zap.Uint("order_id", orderID),
		zap.String("invoice_number", invoiceNo),
		zap.String("total_amount", p.TotalAmount.String()),
	)

	return &Confirmation{
		OrderID:       orderID,
		InvoiceNumber: invoiceNo,
		TotalAmount:   p.TotalAmount,
	}, nil
}

// pickInvoiceNumber generates an invoice number that is free at the time of
// the check, regenerating a bounded number of times and falling back to a
// nanosecond-timestamp suffix. The orders.invoice_number unique constraint
// remains the real guarantee.
func (s *store) pickInvoiceNumber(ctx context.Context, tx *sql.Tx) (string, error) {
	for i := 0; i < invoiceRetryLimit; i++ {
		candidate := utils.GenerateInvoiceNumber()

		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE invoice_number = $1)`,
			candidate,
		).Scan(&exists)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return utils.GenerateInvoiceNumberFallback(), nil
}

// loseRace resolves a reference unique violation: the other transaction won,
// so the caller gets that order instead of an error.
func (s *store) loseRace(ctx context.Context, reference string) (*Confirmation, error) {
	winner, err := s.confirmationByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	if winner == nil {
		// The competing transaction rolled back after all; this attempt is
		// already aborted, so report failure and let the caller retry.
		return nil, ErrOrderCreationFailed
	}
	winner.AlreadyProcessed = true
	return winner, nil
}

func (s *store) confirmationByReference(ctx context.Context, reference string) (*Confirmation, error) {
	query := `
		SELECT o.id, o.invoice_number, o.total_amount
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE p.reference = $1
	`

	var c Confirmation
	err := s.db.QueryRowContext(ctx, query, reference).Scan(
		&c.OrderID,
		&c.InvoiceNumber,
		&c.TotalAmount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *store) GetOrderByReference(ctx context.Context, reference string) (*Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.invoice_number, o.total_amount, o.currency,
		       o.shipping_address, o.payment_method, o.status, o.created_at
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE p.reference = $1
	`

	var o Order
	err := s.db.QueryRowContext(ctx, query, reference).Scan(
		&o.ID,
		&o.CustomerID,
		&o.InvoiceNumber,
		&o.TotalAmount,
		&o.Currency,
		&o.ShippingAddress,
		&o.PaymentMethod,
		&o.Status,
		&o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order by reference: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
	`, o.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return &o, nil
}

// SaveWebhookEvent records the raw inbound callback for audit before any
// processing. Duplicate (provider, event_id) pairs are idempotent no-ops.
func (s *store) SaveWebhookEvent(
	ctx context.Context,
	provider string,
	eventID string,
	reference string,
	payload json.RawMessage,
	signatureValid bool,
) (int64, bool, error) {

	const q = `
	INSERT INTO payment_webhooks (
		provider,
		event_id,
		reference,
		signature_valid,
		payload
	)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (provider, event_id)
	DO NOTHING
	RETURNING id;
	`

	var id int64
	err := s.db.QueryRowContext(ctx, q, provider, eventID, reference, signatureValid, payload).Scan(&id)
	if err != nil {
		// Duplicate webhook is an idempotent success
		if errors.Is(err, sql.ErrNoRows) {
			return 0, true, nil
		}
		return 0, false, err
	}

	return id, false, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation
}
