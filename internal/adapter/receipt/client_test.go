package receipt

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ajdiallo/chopnow/internal/domain/model"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewHTTPNotifierValidation(t *testing.T) {
	if _, err := NewHTTPNotifier("not-a-url", newTestLogger()); err == nil {
		t.Fatalf("expected error for non-absolute url")
	}
	if _, err := NewHTTPNotifier("https://notify.example", newTestLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSendReceipt(t *testing.T) {
	var gotPath string
	var got receiptPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	notifier, err := NewHTTPNotifier(server.URL, newTestLogger())
	if err != nil {
		t.Fatalf("create notifier: %v", err)
	}

	receipt := model.Receipt{
		CustomerEmail: "ada@example.com",
		OrderID:       10,
		Reference:     "ref-1",
		Status:        model.PaymentStatusSuccess,
		LineItems: []model.OrderItem{
			{Name: "jollof rice", Quantity: 2, UnitPrice: decimal.NewFromInt(1500)},
		},
		TotalAmount: decimal.NewFromInt(3000),
		Currency:    "NGN",
	}
	if err := notifier.SendReceipt(context.Background(), receipt); err != nil {
		t.Fatalf("send returned error: %v", err)
	}

	if gotPath != "/api/receipts" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if got.Email != "ada@example.com" || got.Reference != "ref-1" || got.Status != "success" {
		t.Fatalf("unexpected payload %+v", got)
	}
	if got.TotalAmount != "3000.00" || got.Currency != "NGN" {
		t.Fatalf("amounts not formatted: %+v", got)
	}
	if len(got.LineItems) != 1 || got.LineItems[0].UnitPrice != "1500.00" {
		t.Fatalf("line items not carried: %+v", got.LineItems)
	}
}

func TestSendReceiptServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier, err := NewHTTPNotifier(server.URL, newTestLogger())
	if err != nil {
		t.Fatalf("create notifier: %v", err)
	}
	if err := notifier.SendReceipt(context.Background(), model.Receipt{OrderID: 1}); err == nil {
		t.Fatalf("expected error for 5xx response")
	}
}
