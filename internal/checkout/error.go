package checkout

import "errors"

// Failure taxonomy for checkout completion. Verification and amount errors
// happen before anything is persisted; order-creation failures roll back
// fully and are safe to retry against the same reference.
var (
	// ErrVerificationFailed: the gateway could not confirm the transaction
	// (unreachable, or responded with an error). Retryable with the same
	// reference.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrGatewayRejected: the provider responded and the payment is not
	// successful. Terminal for this reference.
	ErrGatewayRejected = errors.New("payment not successful")

	// ErrAmountMismatch: the paid amount does not match the cart total.
	// Terminal; flagged for investigation, no order is created.
	ErrAmountMismatch = errors.New("paid amount does not match cart total")

	// ErrEmptyCart: the cart was emptied between initiation and verification.
	ErrEmptyCart = errors.New("cart is empty")
)
