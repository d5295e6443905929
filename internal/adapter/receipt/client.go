package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// Notifier delivers settlement receipts to the notification collaborator.
// Delivery is best-effort: callers log failures and move on.
type Notifier interface {
	SendReceipt(ctx context.Context, receipt model.Receipt) error
}

// HTTPNotifier implements Notifier against the notification service API.
type HTTPNotifier struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPNotifier creates notifier client with default timeout.
func NewHTTPNotifier(baseURL string, logger *slog.Logger) (*HTTPNotifier, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse notifier url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("notifier url must be absolute")
	}
	return &HTTPNotifier{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type lineItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type receiptPayload struct {
	Email       string     `json:"email"`
	OrderID     int64      `json:"order_id"`
	Reference   string     `json:"reference"`
	Status      string     `json:"status"`
	LineItems   []lineItem `json:"line_items"`
	TotalAmount string     `json:"total_amount"`
	Currency    string     `json:"currency"`
}

// SendReceipt posts the receipt to the notification service.
func (n *HTTPNotifier) SendReceipt(ctx context.Context, receipt model.Receipt) error {
	endpoint := *n.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/receipts")

	payload := receiptPayload{
		Email:       receipt.CustomerEmail,
		OrderID:     receipt.OrderID,
		Reference:   receipt.Reference,
		Status:      string(receipt.Status),
		TotalAmount: receipt.TotalAmount.StringFixed(2),
		Currency:    receipt.Currency,
	}
	for _, item := range receipt.LineItems {
		payload.LineItems = append(payload.LineItems, lineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notifier error: %s", resp.Status)
	}
	return nil
}
