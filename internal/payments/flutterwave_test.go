package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pathific-platform/internal/config"
)

func testClient(hash string, handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(config.FlutterwaveConfig{
		SecretKey:   "sk-test",
		WebhookHash: hash,
		RedirectURL: "http://localhost:3000/payment/complete",
	}).WithBaseURL(srv.URL)
	return c, srv
}

func TestCheckoutReturnsPaymentLink(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	c, srv := testClient("", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/payments" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"link": "https://checkout.flutterwave.com/pay/abc"},
		})
	})
	defer srv.Close()

	link, err := c.Checkout(context.Background(), CheckoutRequest{
		Amount:   "100",
		Currency: "KES",
		Email:    "a@x.com",
		Name:     "Ada",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if link != "https://checkout.flutterwave.com/pay/abc" {
		t.Fatalf("unexpected link %q", link)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("expected bearer secret key, got %q", gotAuth)
	}
	txRef, _ := gotPayload["tx_ref"].(string)
	if !strings.HasPrefix(txRef, "PATHIFIC-") {
		t.Fatalf("expected PATHIFIC tx_ref, got %q", txRef)
	}
	if gotPayload["redirect_url"] != "http://localhost:3000/payment/complete" {
		t.Fatalf("unexpected redirect_url: %v", gotPayload["redirect_url"])
	}
}

func TestCheckoutAppliesDefaults(t *testing.T) {
	var gotPayload map[string]any
	c, srv := testClient("", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"link": "x"}})
	})
	defer srv.Close()

	if _, err := c.Checkout(context.Background(), CheckoutRequest{Email: "a@x.com"}); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if gotPayload["amount"] != "50" || gotPayload["currency"] != "KES" {
		t.Fatalf("expected default amount/currency, got %v/%v", gotPayload["amount"], gotPayload["currency"])
	}
}

func TestCheckoutRequiresEmail(t *testing.T) {
	c := NewClient(config.FlutterwaveConfig{SecretKey: "sk"})
	if _, err := c.Checkout(context.Background(), CheckoutRequest{}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}

func TestCheckoutProviderError(t *testing.T) {
	c, srv := testClient("", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	if _, err := c.Checkout(context.Background(), CheckoutRequest{Email: "a@x.com"}); !errors.Is(err, ErrCheckoutFailed) {
		t.Fatalf("expected ErrCheckoutFailed, got %v", err)
	}
}

func TestVerifyWebhookHash(t *testing.T) {
	c := NewClient(config.FlutterwaveConfig{WebhookHash: "expected-hash"})

	if !c.VerifyWebhookHash("expected-hash") {
		t.Fatalf("expected matching hash to verify")
	}
	if c.VerifyWebhookHash("wrong") || c.VerifyWebhookHash("") {
		t.Fatalf("expected non-matching hash to fail")
	}

	unconfigured := NewClient(config.FlutterwaveConfig{})
	if unconfigured.VerifyWebhookHash("anything") {
		t.Fatalf("unconfigured hash must verify nothing")
	}
}
