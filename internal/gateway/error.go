package gateway

import "errors"

var (
	// ErrGatewayUnavailable: the provider could not be reached (network/timeout).
	// Retryable by the client re-submitting the same reference.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayError: the provider responded with a well-formed error.
	ErrGatewayError = errors.New("payment gateway error")
)
