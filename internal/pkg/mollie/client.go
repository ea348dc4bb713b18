// Package mollie is a minimal client for the Mollie v2 payments API,
// covering exactly the calls the booking lifecycle needs: create a payment,
// fetch its authoritative status, and create a refund. Amounts cross the
// wire as decimal-string major units ("12.50"), while the rest of the
// system counts in minor units.
package mollie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://api.mollie.com/v2"

// MinimumAmountCents is the smallest chargeable amount; payment initiation
// rejects anything below it.
const MinimumAmountCents = 100

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a client. baseURL may be empty to use the production API; it is
// overridable for tests.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

type Link struct {
	Href string `json:"href"`
}

type Payment struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"` // open|paid|failed|expired|canceled
	Amount   Amount            `json:"amount"`
	Method   string            `json:"method"`
	PaidAt   *time.Time        `json:"paidAt"`
	Metadata map[string]string `json:"metadata"`
	Links    struct {
		Checkout *Link `json:"checkout"`
	} `json:"_links"`
}

type Refund struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount Amount `json:"amount"`
}

type CreatePaymentRequest struct {
	Amount      Amount            `json:"amount"`
	Description string            `json:"description"`
	RedirectURL string            `json:"redirectUrl"`
	WebhookURL  string            `json:"webhookUrl"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// APIError carries a non-2xx provider response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mollie: unexpected status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	var p Payment
	if err := c.do(ctx, http.MethodPost, "/payments", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPayment fetches the authoritative payment state by identifier. Webhook
// reconciliation relies on this call and never on notification bodies.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	if err := c.do(ctx, http.MethodGet, "/payments/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateRefund(ctx context.Context, paymentID string, amount Amount, description string) (*Refund, error) {
	body := map[string]any{"amount": amount, "description": description}
	var r Refund
	if err := c.do(ctx, http.MethodPost, "/payments/"+paymentID+"/refunds", body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mollie: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return json.Unmarshal(raw, out)
}

// FormatCents renders minor units as a Mollie decimal string: 1250 -> "12.50".
func FormatCents(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

// ParseCents converts a Mollie decimal string back to minor units.
func ParseCents(value string) (int64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("mollie: malformed amount %q", value)
	}
	return int64(math.Round(f * 100)), nil
}
