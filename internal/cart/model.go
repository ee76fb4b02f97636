package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one cart row: the unit price is snapshotted when the product is
// added to the cart and does not follow later price changes.
type Line struct {
	CustomerID uint
	ProductID  uint
	Quantity   int
	UnitPrice  decimal.Decimal
	CreatedAt  time.Time
}

// Subtotal is quantity × unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
