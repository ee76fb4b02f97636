package order

import (
	"time"

	"checkout-be/internal/cart"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

type Order struct {
	ID              uint
	CustomerID      uint
	InvoiceNumber   string
	TotalAmount     decimal.Decimal
	Currency        string
	ShippingAddress string
	PaymentMethod   string
	Status          Status
	CreatedAt       time.Time
	Items           []Item
}

// Item belongs to exactly one order. UnitPrice is snapshotted at purchase time
// and does not follow later product price changes.
type Item struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
}

type Payment struct {
	ID                uint
	OrderID           uint
	CustomerID        uint
	Reference         string
	Amount            decimal.Decimal
	Currency          string
	PaymentMethod     string
	Channel           string
	AuthorizationCode string
	PaidAt            time.Time
}

// CreateOrderParams is everything the store needs to materialize an order,
// its items, and its payment in one transaction.
type CreateOrderParams struct {
	CustomerID        uint
	Lines             []cart.Line
	ShippingAddress   string
	PaymentMethod     string
	Reference         string
	AuthorizationCode string
	Channel           string
	Currency          string
	TotalAmount       decimal.Decimal
}

// Confirmation is the durable outcome reported back to the reconciler.
type Confirmation struct {
	OrderID       uint
	InvoiceNumber string
	TotalAmount   decimal.Decimal
	// AlreadyProcessed is true when the reference had a recorded payment and
	// the existing order was returned instead of creating a duplicate.
	AlreadyProcessed bool
}
