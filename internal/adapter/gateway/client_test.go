package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewHTTPClientValidation(t *testing.T) {
	if _, err := NewHTTPClient("relative/url", "sk_test", newTestLogger()); err == nil {
		t.Fatalf("expected error for non-absolute url")
	}
	if _, err := NewHTTPClient("https://api.example", "", newTestLogger()); err == nil {
		t.Fatalf("expected error for empty secret key")
	}
	if _, err := NewHTTPClient("https://api.example", "sk_test", newTestLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"5000", 500000},
		{"49.99", 4999},
		{"0.01", 1},
		{"10.005", 1001},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.amount, err)
		}
		if got := MinorUnits(d); got != tc.want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestClientInitialize(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.example/abc",
				"access_code":       "abc",
			},
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk_test", newTestLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	result, err := client.Initialize(context.Background(), InitializeRequest{
		Email:       "ada@example.com",
		Amount:      decimal.NewFromInt(5000),
		Reference:   "ref-1",
		CallbackURL: "https://chopnow.example/callback",
	})
	if err != nil {
		t.Fatalf("initialize returned error: %v", err)
	}
	if result.AuthorizationURL != "https://checkout.example/abc" || result.AccessCode != "abc" {
		t.Fatalf("unexpected result %+v", result)
	}
	if gotPath != "/transaction/initialize" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer sk_test" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
	if gotBody["amount"] != float64(500000) {
		t.Fatalf("amount must be sent in minor units, got %v", gotBody["amount"])
	}
}

func TestClientVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/ref-1" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"status":    "success",
				"reference": "ref-1",
				"authorization": map[string]any{
					"authorization_code": "AUTH_x",
					"card_type":          "visa",
					"last4":              "4081",
					"reusable":           true,
				},
				"metadata": map[string]any{"save_instrument": true},
			},
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk_test", newTestLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	settlement, err := client.Verify(context.Background(), "ref-1")
	if err != nil {
		t.Fatalf("verify returned error: %v", err)
	}
	if settlement.Status != model.SettlementStatusSuccess {
		t.Fatalf("expected success, got %s", settlement.Status)
	}
	if settlement.Authorization == nil || settlement.Authorization.AuthorizationCode != "AUTH_x" {
		t.Fatalf("authorization not decoded: %+v", settlement.Authorization)
	}
	if !settlement.SaveInstrument {
		t.Fatalf("save_instrument metadata not decoded")
	}
	if len(settlement.RawResponse) == 0 {
		t.Fatalf("raw response must be retained for audit")
	}
}

func TestClientRejectedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "Invalid key"})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk_test", newTestLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	_, err = client.Verify(context.Background(), "ref-1")
	var gatewayErr domainErrors.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gatewayErr.Op != "verify" {
		t.Fatalf("unexpected op %q", gatewayErr.Op)
	}
}

func TestClientBadStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk_test", newTestLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	var gatewayErr domainErrors.GatewayError
	if _, err := client.Verify(context.Background(), "ref-1"); !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	client, err := NewHTTPClient("https://api.example", "sk_test", newTestLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	payload := []byte(`{"event":"charge.success"}`)
	mac := hmac.New(sha512.New, []byte("sk_test"))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	if !client.VerifyWebhookSignature(payload, signature) {
		t.Fatalf("valid signature rejected")
	}
	if client.VerifyWebhookSignature(payload, "deadbeef") {
		t.Fatalf("forged signature accepted")
	}
	if client.VerifyWebhookSignature([]byte(`{"event":"tampered"}`), signature) {
		t.Fatalf("tampered payload accepted")
	}
}

func TestParseWebhook(t *testing.T) {
	client, err := NewHTTPClient("https://api.example", "sk_test", newTestLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	payload := []byte(`{
		"event": "charge.success",
		"id": "evt_9",
		"data": {"status": "pending", "reference": "ref-5"}
	}`)

	eventType, eventID, reference, settlement, err := client.ParseWebhook(payload)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if eventType != "charge.success" || eventID != "evt_9" || reference != "ref-5" {
		t.Fatalf("event identity wrong: %s %s %s", eventType, eventID, reference)
	}
	// The event name is authoritative over the embedded snapshot.
	if settlement.Status != model.SettlementStatusSuccess {
		t.Fatalf("expected success from event name, got %s", settlement.Status)
	}

	if _, _, _, _, err := client.ParseWebhook([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
