// internal/app/system/payments/payments.go
package payments

// Thin client for the hosted checkout provider. We create a checkout
// session for the Pro upgrade and receive the outcome on a webhook; card
// data never touches this service.

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutSession is a provider-hosted payment page for one upgrade.
type CheckoutSession struct {
	Reference string `json:"reference"`
	URL       string `json:"url"`
}

// WebhookEvent is the provider's callback payload.
type WebhookEvent struct {
	Reference string `json:"reference"`
	Status    string `json:"status"` // "paid" or "failed"
	UserID    string `json:"user_id"`
}

// StatusPaid is the webhook status for a completed payment.
const StatusPaid = "paid"

type Client struct {
	baseURL    string
	apiKey     string
	webhookKey string
	hc         *http.Client
	log        *zap.Logger
}

func New(baseURL, apiKey, webhookKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		webhookKey: webhookKey,
		hc:         &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// Enabled reports whether a provider is configured. When false the
// billing endpoints respond with a validation error instead of dialing
// nowhere.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// CreateCheckout opens a checkout session for the given user. The
// reference ties the webhook callback back to the user.
func (c *Client) CreateCheckout(ctx context.Context, userID, email, successURL string) (CheckoutSession, error) {
	reference := uuid.NewString()

	body, err := json.Marshal(map[string]string{
		"reference":   reference,
		"user_id":     userID,
		"email":       email,
		"plan":        "pro",
		"success_url": successURL,
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout", bytes.NewReader(body))
	if err != nil {
		return CheckoutSession{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("checkout request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return CheckoutSession{}, fmt.Errorf("checkout provider returned %d: %s", resp.StatusCode, b)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return CheckoutSession{}, fmt.Errorf("decode checkout response: %w", err)
	}
	return CheckoutSession{Reference: reference, URL: out.URL}, nil
}

// ParseWebhook verifies the provider signature and decodes the event.
// The signature is an HMAC-SHA256 of the raw body, hex encoded, in the
// X-Signature header.
func (c *Client) ParseWebhook(r *http.Request, maxBytes int64) (WebhookEvent, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return WebhookEvent{}, err
	}

	if c.webhookKey != "" {
		mac := hmac.New(sha256.New, []byte(c.webhookKey))
		mac.Write(body)
		want := hex.EncodeToString(mac.Sum(nil))
		got := r.Header.Get("X-Signature")
		if !hmac.Equal([]byte(want), []byte(got)) {
			return WebhookEvent{}, fmt.Errorf("webhook signature mismatch")
		}
	}

	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return WebhookEvent{}, fmt.Errorf("decode webhook: %w", err)
	}
	return ev, nil
}
