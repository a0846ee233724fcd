package payments

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pathific-platform/internal/config"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.flutterwave.com"

var ErrCheckoutFailed = errors.New("payments: checkout failed")

// Client talks to the Flutterwave v3 payments API. The secret key is held
// here and never logged; handlers only see the hosted payment link.
type Client struct {
	baseURL     string
	secretKey   string
	webhookHash string
	redirectURL string
	httpc       *http.Client
}

func NewClient(cfg config.FlutterwaveConfig) *Client {
	return &Client{
		baseURL:     defaultBaseURL,
		secretKey:   cfg.SecretKey,
		webhookHash: cfg.WebhookHash,
		redirectURL: cfg.RedirectURL,
		httpc:       &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint. Test hook.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

type CheckoutRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
}

type checkoutPayload struct {
	TxRef          string            `json:"tx_ref"`
	Amount         string            `json:"amount"`
	Currency       string            `json:"currency"`
	RedirectURL    string            `json:"redirect_url"`
	Customer       checkoutCustomer  `json:"customer"`
	Customizations map[string]string `json:"customizations"`
}

type checkoutCustomer struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	Name        string `json:"name"`
}

type checkoutResponse struct {
	Data struct {
		Link string `json:"link"`
	} `json:"data"`
}

// Checkout creates a hosted payment and returns the redirect link.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (string, error) {
	if req.Amount == "" {
		req.Amount = "50"
	}
	if req.Currency == "" {
		req.Currency = "KES"
	}
	if req.Email == "" {
		return "", errors.New("payments: customer email is required")
	}

	payload := checkoutPayload{
		TxRef:       "PATHIFIC-" + uuid.NewString(),
		Amount:      req.Amount,
		Currency:    req.Currency,
		RedirectURL: c.redirectURL,
		Customer: checkoutCustomer{
			Email:       req.Email,
			PhoneNumber: req.Phone,
			Name:        req.Name,
		},
		Customizations: map[string]string{
			"title":       "Pathific",
			"description": "Structured micro-learning",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/payments", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	res, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("payments: checkout request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: provider status %d", ErrCheckoutFailed, res.StatusCode)
	}

	var out checkoutResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("payments: decode checkout response: %w", err)
	}
	if out.Data.Link == "" {
		return "", fmt.Errorf("%w: provider returned no payment link", ErrCheckoutFailed)
	}
	return out.Data.Link, nil
}

// VerifyWebhookHash checks the verif-hash header against the configured
// secret hash in constant time. An unconfigured hash verifies nothing.
func (c *Client) VerifyWebhookHash(got string) bool {
	if c.webhookHash == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.webhookHash), []byte(got)) == 1
}
