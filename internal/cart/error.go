package cart

import "errors"

var (
	ErrFailedGetCartRows = errors.New("failed to get cart rows")
	ErrFailedClearCart   = errors.New("failed to clear cart")
)
