package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderCreationFailed: the transaction rolled back, nothing was
	// persisted. Safe to retry; the reference idempotency guard makes a retry
	// return the winner if another attempt committed first.
	ErrOrderCreationFailed = errors.New("order creation failed")

	ErrNoLines = errors.New("order must have at least one line")
)

// PgUniqueViolation is the Postgres error code for unique constraint breaches.
const PgUniqueViolation = "23505"
