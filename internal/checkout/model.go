package checkout

// VerifyRequest is the inbound callback body. cart_items and total_amount are
// accepted for compatibility with the storefront client but never trusted:
// the server-side cart is the source of truth.
type VerifyRequest struct {
	Reference   string            `json:"reference"`
	CartItems   []RequestCartItem `json:"cart_items,omitempty"`
	TotalAmount *float64          `json:"total_amount,omitempty"`
}

type RequestCartItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// SuccessResponse is the payload for a reconciled checkout.
type SuccessResponse struct {
	Status    string `json:"status"`
	Verified  bool   `json:"verified"`
	OrderID   uint   `json:"order_id"`
	InvoiceNo string `json:"invoice_no"`
	Message   string `json:"message"`
}

// ErrorResponse distinguishes "payment did not succeed" from "payment
// succeeded but order confirmation had an issue"; the latter always carries
// the gateway reference in the message for manual reconciliation.
type ErrorResponse struct {
	Status   string `json:"status"`
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}
