package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// Provider identifies the payment gateway in webhook receipts.
const Provider = "paystack"

var minorFactor = decimal.NewFromInt(100)

// MinorUnits converts a decimal major-currency amount to integer minor units.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorFactor).Round(0).IntPart()
}

// InitializeRequest starts a hosted checkout for a payment reference.
type InitializeRequest struct {
	Email       string
	Amount      decimal.Decimal
	Reference   string
	CallbackURL string
	Metadata    map[string]any
}

// InitializeResult is the hosted checkout handle returned by the gateway.
type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
}

// ChargeRequest debits a stored reusable credential without hosted checkout.
type ChargeRequest struct {
	Email             string
	Amount            decimal.Decimal
	AuthorizationCode string
	Reference         string
	Metadata          map[string]any
}

// Client exposes payment gateway operations.
type Client interface {
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
	Verify(ctx context.Context, reference string) (*model.Settlement, error)
	ChargeAuthorization(ctx context.Context, req ChargeRequest) (*model.Settlement, error)
	VerifyWebhookSignature(payload []byte, signature string) bool
	ParseWebhook(payload []byte) (eventType, eventID, reference string, settlement *model.Settlement, err error)
}

// HTTPClient implements Client against the gateway REST API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  []byte
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates gateway client with default timeout.
func NewHTTPClient(baseURL, secretKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	if secretKey == "" {
		return nil, fmt.Errorf("gateway secret key must be provided")
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: []byte(secretKey),
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type transactionData struct {
	AuthorizationURL string             `json:"authorization_url"`
	AccessCode       string             `json:"access_code"`
	Status           string             `json:"status"`
	Reference        string             `json:"reference"`
	PaidAt           *time.Time         `json:"paid_at"`
	Authorization    *authorizationData `json:"authorization"`
	Metadata         map[string]any     `json:"metadata"`
}

type authorizationData struct {
	AuthorizationCode string `json:"authorization_code"`
	CardType          string `json:"card_type"`
	Last4             string `json:"last4"`
	Bank              string `json:"bank"`
	Signature         string `json:"signature"`
	Reusable          bool   `json:"reusable"`
}

func (c *HTTPClient) do(ctx context.Context, op, method, endpoint string, body any) (*envelope, []byte, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+string(c.secretKey))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, domainErrors.GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, domainErrors.GatewayError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("gateway request failed",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
		)
		return nil, nil, domainErrors.GatewayError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, domainErrors.GatewayError{Op: op, Err: fmt.Errorf("malformed response: %w", err)}
	}
	if !env.Status {
		return nil, nil, domainErrors.GatewayError{Op: op, Err: fmt.Errorf("gateway rejected request: %s", env.Message)}
	}
	return &env, raw, nil
}

// Initialize starts hosted checkout for the reference.
func (c *HTTPClient) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	payload := map[string]any{
		"email":     req.Email,
		"amount":    MinorUnits(req.Amount),
		"reference": req.Reference,
	}
	if req.CallbackURL != "" {
		payload["callback_url"] = req.CallbackURL
	}
	if req.Metadata != nil {
		payload["metadata"] = req.Metadata
	}

	env, _, err := c.do(ctx, "initialize", http.MethodPost, "/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}

	var data transactionData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, domainErrors.GatewayError{Op: "initialize", Err: err}
	}
	return &InitializeResult{AuthorizationURL: data.AuthorizationURL, AccessCode: data.AccessCode}, nil
}

// Verify queries the gateway for the transaction outcome.
func (c *HTTPClient) Verify(ctx context.Context, reference string) (*model.Settlement, error) {
	env, raw, err := c.do(ctx, "verify", http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	return settlementFromData(env.Data, raw, reference)
}

// ChargeAuthorization debits a stored credential directly.
func (c *HTTPClient) ChargeAuthorization(ctx context.Context, req ChargeRequest) (*model.Settlement, error) {
	payload := map[string]any{
		"email":              req.Email,
		"amount":             MinorUnits(req.Amount),
		"authorization_code": req.AuthorizationCode,
		"reference":          req.Reference,
	}
	if req.Metadata != nil {
		payload["metadata"] = req.Metadata
	}

	env, raw, err := c.do(ctx, "charge", http.MethodPost, "/transaction/charge_authorization", payload)
	if err != nil {
		return nil, err
	}
	return settlementFromData(env.Data, raw, req.Reference)
}

func settlementFromData(data json.RawMessage, raw []byte, reference string) (*model.Settlement, error) {
	var tr transactionData
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, domainErrors.GatewayError{Op: "decode", Err: err}
	}
	if tr.Reference != "" {
		reference = tr.Reference
	}

	settlement := &model.Settlement{
		Reference:   reference,
		Status:      mapRemoteStatus(tr.Status),
		PaidAt:      tr.PaidAt,
		RawResponse: raw,
	}
	if tr.Authorization != nil {
		settlement.Authorization = &model.InstrumentAuthorization{
			AuthorizationCode: tr.Authorization.AuthorizationCode,
			CardType:          tr.Authorization.CardType,
			Last4:             tr.Authorization.Last4,
			Bank:              tr.Authorization.Bank,
			Signature:         tr.Authorization.Signature,
			Reusable:          tr.Authorization.Reusable,
		}
	}
	if save, ok := tr.Metadata["save_instrument"].(bool); ok {
		settlement.SaveInstrument = save
	}
	return settlement, nil
}

func mapRemoteStatus(status string) model.SettlementStatus {
	switch status {
	case "success":
		return model.SettlementStatusSuccess
	case "failed":
		return model.SettlementStatusFailed
	case "abandoned":
		return model.SettlementStatusAbandoned
	default:
		return model.SettlementStatusPending
	}
}

// VerifyWebhookSignature checks the HMAC-SHA512 hex signature the gateway
// attaches to webhook deliveries.
func (c *HTTPClient) VerifyWebhookSignature(payload []byte, signature string) bool {
	mac := hmac.New(sha512.New, c.secretKey)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type webhookBody struct {
	Event string          `json:"event"`
	ID    string          `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// ParseWebhook extracts the event identity and settlement outcome from a
// signature-verified webhook payload.
func (c *HTTPClient) ParseWebhook(payload []byte) (string, string, string, *model.Settlement, error) {
	var body webhookBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", "", "", nil, domainErrors.GatewayError{Op: "webhook", Err: fmt.Errorf("malformed payload: %w", err)}
	}

	var tr transactionData
	if err := json.Unmarshal(body.Data, &tr); err != nil {
		return "", "", "", nil, domainErrors.GatewayError{Op: "webhook", Err: fmt.Errorf("malformed payload data: %w", err)}
	}

	settlement, err := settlementFromData(body.Data, payload, tr.Reference)
	if err != nil {
		return "", "", "", nil, err
	}

	// Event name wins over the embedded transaction status; a charge.success
	// delivery settles successfully even when the snapshot lags.
	switch body.Event {
	case "charge.success":
		settlement.Status = model.SettlementStatusSuccess
	case "charge.failed":
		settlement.Status = model.SettlementStatusFailed
	}

	return body.Event, body.ID, tr.Reference, settlement, nil
}
