package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"checkout-be/internal/logger"

	"go.uber.org/zap"
)

const paystackBaseURL = "https://api.paystack.co"

// Client verifies a transaction reference against the payment provider.
// Verification is a pure read; no local state changes here.
type Client interface {
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

type paystackClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewPaystackClient(secretKey string) Client {
	if secretKey == "" {
		logger.L().Warn("Paystack secret key is empty")
	}

	return &paystackClient{
		secretKey: secretKey,
		baseURL:   paystackBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *paystackClient) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("reference", reference))

	endpoint := fmt.Sprintf("%s/transaction/verify/%s", p.baseURL, url.PathEscape(reference))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		log.Error("Failed building verify request", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayError, err)
	}

	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	log.Info("Verifying transaction with Paystack")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error("Paystack request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to read paystack response: %v", ErrGatewayUnavailable, err)
	}

	raw := json.RawMessage(bodyBytes)

	if resp.StatusCode != http.StatusOK {
		log.Error("Paystack returned non-success status",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: %s", ErrGatewayError, string(bodyBytes))
	}

	var res paystackVerifyResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding Paystack response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayError, err)
	}

	if !res.Status {
		log.Warn("Paystack rejected verification", zap.String("message", res.Message))
		return nil, fmt.Errorf("%w: %s", ErrGatewayError, res.Message)
	}

	result := &VerifyResult{
		Reference:         res.Data.Reference,
		Status:            normalizeStatus(res.Data.Status),
		RawStatus:         res.Data.Status,
		AmountMinor:       res.Data.Amount,
		Currency:          res.Data.Currency,
		Channel:           res.Data.Channel,
		AuthorizationCode: res.Data.Authorization.AuthorizationCode,
		PaidAt:            res.Data.PaidAt,
		Raw:               raw,
	}

	if result.Channel == "" {
		result.Channel = res.Data.Authorization.Channel
	}
	if result.Reference == "" {
		result.Reference = reference
	}

	log.Info("Transaction verified",
		zap.String("status", string(result.Status)),
		zap.String("raw_status", result.RawStatus),
		zap.Int64("amount_minor", result.AmountMinor),
		zap.String("channel", result.Channel),
	)

	return result, nil
}
