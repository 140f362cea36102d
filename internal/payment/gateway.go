package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/invitarte/invitarte-api/internal/logger"
	"go.uber.org/zap"
)

// Gateway requests checkout tokens from the external payment provider. Calls
// are fire-once: a failure is logged and surfaced, never retried.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
}

type CheckoutRequest struct {
	Reference string  `json:"reference"`
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Mode      string  `json:"mode"`
	NotifyURL string  `json:"notify_url"`
}

type Checkout struct {
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
}

// Notification is the webhook payload the provider posts back after the
// payer finishes (or abandons) the checkout.
type Notification struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

const (
	NotificationApproved = "approved"
	NotificationRejected = "rejected"
)

type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     logger.WithComponent("payment"),
	}
}

func (g *HTTPGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/checkouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.log.Error("checkout request failed", zap.String("reference", req.Reference), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		g.log.Error("checkout request rejected",
			zap.String("reference", req.Reference),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var checkout Checkout
	if err := json.NewDecoder(resp.Body).Decode(&checkout); err != nil {
		return nil, err
	}
	if checkout.Reference == "" {
		checkout.Reference = req.Reference
	}

	return &checkout, nil
}
