package test

import (
	"context"

	"github.com/ajdiallo/chopnow/internal/adapter/gateway"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// GatewayClientStub simulates the payment gateway for tests.
type GatewayClientStub struct {
	InitializeFn func(context.Context, gateway.InitializeRequest) (*gateway.InitializeResult, error)
	VerifyFn     func(context.Context, string) (*model.Settlement, error)
	ChargeFn     func(context.Context, gateway.ChargeRequest) (*model.Settlement, error)
	SignatureOK  bool
	ParseFn      func([]byte) (string, string, string, *model.Settlement, error)

	InitializeCalls []gateway.InitializeRequest
	VerifyCalls     []string
	ChargeCalls     []gateway.ChargeRequest
}

// Initialize records the call and returns a configured checkout handle.
func (s *GatewayClientStub) Initialize(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResult, error) {
	s.InitializeCalls = append(s.InitializeCalls, req)
	if s.InitializeFn != nil {
		return s.InitializeFn(ctx, req)
	}
	return &gateway.InitializeResult{
		AuthorizationURL: "https://checkout.example/" + req.Reference,
		AccessCode:       "access",
	}, nil
}

// Verify records the call and returns a successful settlement by default.
func (s *GatewayClientStub) Verify(ctx context.Context, reference string) (*model.Settlement, error) {
	s.VerifyCalls = append(s.VerifyCalls, reference)
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, reference)
	}
	return &model.Settlement{Reference: reference, Status: model.SettlementStatusSuccess}, nil
}

// ChargeAuthorization records the call and returns a successful settlement.
func (s *GatewayClientStub) ChargeAuthorization(ctx context.Context, req gateway.ChargeRequest) (*model.Settlement, error) {
	s.ChargeCalls = append(s.ChargeCalls, req)
	if s.ChargeFn != nil {
		return s.ChargeFn(ctx, req)
	}
	return &model.Settlement{Reference: req.Reference, Status: model.SettlementStatusSuccess}, nil
}

// VerifyWebhookSignature reports the configured outcome.
func (s *GatewayClientStub) VerifyWebhookSignature(payload []byte, signature string) bool {
	return s.SignatureOK
}

// ParseWebhook delegates to the override or returns a success event.
func (s *GatewayClientStub) ParseWebhook(payload []byte) (string, string, string, *model.Settlement, error) {
	if s.ParseFn != nil {
		return s.ParseFn(payload)
	}
	return "charge.success", "evt_1", "ref", &model.Settlement{Reference: "ref", Status: model.SettlementStatusSuccess}, nil
}

var _ gateway.Client = (*GatewayClientStub)(nil)
