package gateway

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is the normalized outcome of a transaction verification.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusPending Status = "PENDING"
	StatusFailed  Status = "FAILED"
)

// VerifyResult is what the reconciler consumes. AmountMinor is in the
// provider's minor currency unit (pesewas/cents) and must be divided by 100
// before comparison with local major-unit totals.
type VerifyResult struct {
	Reference         string
	Status            Status
	RawStatus         string
	AmountMinor       int64
	Currency          string
	Channel           string
	AuthorizationCode string
	PaidAt            *time.Time
	Raw               json.RawMessage
}

// normalizeStatus maps the provider's status string. Only an explicit success
// marker counts as success; an HTTP 200 with any other status does not.
func normalizeStatus(raw string) Status {
	switch strings.ToLower(raw) {
	case "success", "successful", "completed":
		return StatusSuccess
	case "pending", "ongoing", "processing", "queued", "send_otp", "send_pin":
		return StatusPending
	default:
		return StatusFailed
	}
}

// paystackVerifyResponse mirrors the provider's verify-transaction payload.
type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status        string     `json:"status"`
		Reference     string     `json:"reference"`
		Amount        int64      `json:"amount"`
		Currency      string     `json:"currency"`
		Channel       string     `json:"channel"`
		PaidAt        *time.Time `json:"paid_at"`
		Authorization struct {
			AuthorizationCode string `json:"authorization_code"`
			Channel           string `json:"channel"`
		} `json:"authorization"`
	} `json:"data"`
}
