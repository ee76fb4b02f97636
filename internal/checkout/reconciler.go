package checkout

import (
	"context"
	"fmt"
	"time"

	"checkout-be/internal/cart"
	"checkout-be/internal/customer"
	"checkout-be/internal/gateway"
	"checkout-be/internal/logger"
	"checkout-be/internal/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// amountTolerance is the fixed absolute tolerance (0.01 currency unit) when
// comparing the gateway-reported amount with the local cart total.
var amountTolerance = decimal.New(1, -2)

const persistTimeout = 15 * time.Second

// Confirmation is what a completed checkout reports back for display.
type Confirmation struct {
	OrderID       uint
	InvoiceNumber string
	TotalAmount   decimal.Decimal
	Reference     string
	// AlreadyProcessed: this reference was reconciled by an earlier callback
	// and the existing order was returned.
	AlreadyProcessed bool
	// CartCleared is false when the order committed but the cart delete
	// failed; the failure is logged and left for out-of-band cleanup.
	CartCleared bool
}

// Reconciler matches an external payment confirmation to the customer's cart
// and materializes it as a durable order.
type Reconciler interface {
	Complete(ctx context.Context, customerID uint, reference string, clientClaimed *decimal.Decimal) (*Confirmation, error)
}

type reconciler struct {
	gateway  gateway.Client
	cart     cart.Snapshot
	store    order.Store
	profiles customer.Repository
	currency string
}

func NewReconciler(
	gw gateway.Client,
	snap cart.Snapshot,
	store order.Store,
	profiles customer.Repository,
	currency string,
) Reconciler {
	return &reconciler{
		gateway:  gw,
		cart:     snap,
		store:    store,
		profiles: profiles,
		currency: currency,
	}
}

// Complete runs verification → amount check → atomic persistence → cart clear.
// The client-claimed amount is never trusted for validation; the authoritative
// total comes from the cart as it stands now.
func (r *reconciler) Complete(
	ctx context.Context,
	customerID uint,
	reference string,
	clientClaimed *decimal.Decimal,
) (*Confirmation, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("reference", reference),
		zap.Uint("customer_id", customerID),
	)

	// Verifying: strictly before any transaction opens, so no DB locks are
	// held across the gateway round trip.
	res, err := r.gateway.Verify(ctx, reference)
	if err != nil {
		log.Warn("Gateway verification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	if res.Status != gateway.StatusSuccess {
		log.Warn("Payment not successful", zap.String("gateway_status", res.RawStatus))
		return nil, fmt.Errorf("%w: gateway status %q", ErrGatewayRejected, res.RawStatus)
	}

	// AmountChecking against the cart as the database has it right now.
	lines, err := r.cart.Items(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if len(lines) == 0 {
		log.Warn("Cart emptied before verification completed")
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}

	// Gateway amounts arrive in minor units.
	paid := decimal.New(res.AmountMinor, -2)

	if paid.Sub(total).Abs().GreaterThan(amountTolerance) {
		log.Warn("Amount mismatch, flagging for investigation",
			zap.String("paid", paid.String()),
			zap.String("cart_total", total.String()),
		)
		return nil, fmt.Errorf("%w: paid %s, cart total %s", ErrAmountMismatch, paid, total)
	}

	if res.Currency != "" && res.Currency != r.currency {
		log.Warn("Unexpected settlement currency",
			zap.String("got", res.Currency),
			zap.String("want", r.currency),
		)
	}

	if clientClaimed != nil && !clientClaimed.Equal(total) {
		log.Warn("Client-claimed amount disagrees with cart total",
			zap.String("claimed", clientClaimed.String()),
			zap.String("cart_total", total.String()),
		)
	}

	// Persisting. Money has moved; the commit must not be torn down by the
	// caller disconnecting, so detach from client cancellation.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	profile, err := r.profiles.Get(persistCtx, customerID)
	if err != nil {
		log.Error("Customer profile lookup failed after captured payment", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", order.ErrOrderCreationFailed, err)
	}

	conf, err := r.store.CreateOrderWithPayment(persistCtx, order.CreateOrderParams{
		CustomerID:        customerID,
		Lines:             lines,
		ShippingAddress:   profile.ShippingAddress(),
		PaymentMethod:     "Paystack",
		Reference:         reference,
		AuthorizationCode: res.AuthorizationCode,
		Channel:           res.Channel,
		Currency:          r.currency,
		TotalAmount:       total,
	})
	if err != nil {
		log.Error("Order persistence failed after captured payment", zap.Error(err))
		return nil, err
	}

	out := &Confirmation{
		OrderID:          conf.OrderID,
		InvoiceNumber:    conf.InvoiceNumber,
		TotalAmount:      conf.TotalAmount,
		Reference:        reference,
		AlreadyProcessed: conf.AlreadyProcessed,
		CartCleared:      true,
	}

	// CartClearing: the order is committed; a clear failure must never undo
	// it, so it is logged and reported as soft-fail only.
	if err := r.cart.Clear(persistCtx, customerID); err != nil {
		log.Error("Cart clear failed after committed order",
			zap.Uint("order_id", conf.OrderID),
			zap.Error(err),
		)
		out.CartCleared = false
	}

	log.Info("Checkout reconciled",
		zap.Uint("order_id", out.OrderID),
		zap.String("invoice_number", out.InvoiceNumber),
		zap.Bool("already_processed", out.AlreadyProcessed),
	)

	return out, nil
}
