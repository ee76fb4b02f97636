package checkout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"checkout-be/internal/logger"
	"checkout-be/internal/order"
	"checkout-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handler serves the payment verification callback.
type Handler struct {
	reconciler Reconciler
	store      order.Store
}

func NewHandler(reconciler Reconciler, store order.Store) *Handler {
	return &Handler{
		reconciler: reconciler,
		store:      store,
	}
}

// VerifyPayment handles POST /checkout/verify. Business outcomes travel in
// the JSON status field with HTTP 200; only transport-level problems
// (method, auth, malformed body) change the HTTP status.
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Status:  "error",
			Message: "method not allowed",
		})
		return
	}

	customerID, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Status:  "error",
			Message: "customer session required",
		})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "failed to read body",
		})
		return
	}
	defer r.Body.Close()

	var req VerifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "invalid JSON payload",
		})
		return
	}

	if req.Reference == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "missing transaction reference",
		})
		return
	}

	log := logger.FromCtx(r.Context()).With(
		zap.String("reference", req.Reference),
		zap.Uint("customer_id", customerID),
	)

	// Audit trail first; a duplicate callback is recorded as such and still
	// processed, the store's idempotency guard keeps it safe.
	if _, dup, err := h.store.SaveWebhookEvent(
		r.Context(),
		"PAYSTACK",
		fmt.Sprintf("verify:%s", req.Reference),
		req.Reference,
		json.RawMessage(body),
		true,
	); err != nil {
		log.Warn("Failed to record webhook event", zap.Error(err))
	} else if dup {
		log.Info("Duplicate callback for reference")
	}

	var clientClaimed *decimal.Decimal
	if req.TotalAmount != nil {
		d := decimal.NewFromFloat(*req.TotalAmount)
		clientClaimed = &d
	}

	conf, err := h.reconciler.Complete(r.Context(), customerID, req.Reference, clientClaimed)
	if err != nil {
		writeJSON(w, http.StatusOK, errorResponseFor(err, req.Reference))
		return
	}

	message := "payment verified and order created"
	if conf.AlreadyProcessed {
		message = "payment already processed for this reference"
	}

	writeJSON(w, http.StatusOK, SuccessResponse{
		Status:    "success",
		Verified:  true,
		OrderID:   conf.OrderID,
		InvoiceNo: conf.InvoiceNumber,
		Message:   message,
	})
}

// errorResponseFor maps the failure taxonomy to user-visible payloads. Only
// persistence failures happen after money moved, so only they instruct the
// customer to contact support with the reference.
func errorResponseFor(err error, reference string) ErrorResponse {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return ErrorResponse{
			Status:   "error",
			Verified: true,
			Message:  "your cart is empty; nothing to order",
		}
	case errors.Is(err, ErrAmountMismatch):
		return ErrorResponse{
			Status:   "error",
			Verified: true,
			Message:  "paid amount does not match your cart total; the payment is being investigated",
		}
	case errors.Is(err, ErrGatewayRejected):
		return ErrorResponse{
			Status:   "error",
			Verified: false,
			Message:  "payment did not succeed; please try again",
		}
	case errors.Is(err, ErrVerificationFailed):
		return ErrorResponse{
			Status:   "error",
			Verified: false,
			Message:  "could not verify payment; please retry in a moment",
		}
	case errors.Is(err, order.ErrOrderCreationFailed):
		return ErrorResponse{
			Status:   "error",
			Verified: true,
			Message: fmt.Sprintf(
				"payment succeeded but order confirmation had an issue; contact support with reference %s",
				reference,
			),
		}
	default:
		return ErrorResponse{
			Status:   "error",
			Verified: false,
			Message:  "checkout could not be completed",
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
