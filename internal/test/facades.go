package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ajdiallo/chopnow/internal/domain/model"
	"github.com/ajdiallo/chopnow/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CheckoutFn     func(context.Context, int64, []model.OrderItem, model.DeliverySnapshot) (*model.Order, error)
	OrdersFn       func(context.Context, int64) ([]model.Order, error)
	OrderFn        func(context.Context, int64, int64) (*model.Order, error)
	UpdateStatusFn func(context.Context, int64, string) (*model.Order, error)
	CancelFn       func(context.Context, int64, int64) (*model.Order, error)
}

// Checkout delegates to provided function or returns default pending order.
func (s OrderFacadeStub) Checkout(ctx context.Context, userID int64, items []model.OrderItem, delivery model.DeliverySnapshot) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, items, delivery)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending, Items: items, Delivery: delivery}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, Status: model.OrderStatusPending}}, nil
}

// Order returns a single order.
func (s OrderFacadeStub) Order(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, userID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

// UpdateOrderStatus delegates to the override.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatus(status)}, nil
}

// CancelOrder delegates to the override.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, userID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusCancelled}, nil
}

// CouponFacadeStub simulates coupon admission operations.
type CouponFacadeStub struct {
	ValidateFn func(context.Context, int64, int64, string) (*usecase.CouponPreview, error)
	ApplyFn    func(context.Context, int64, int64, string) (*model.Order, error)
	RemoveFn   func(context.Context, int64, int64) (*model.Order, error)
}

// ValidateCoupon returns a configured preview.
func (s CouponFacadeStub) ValidateCoupon(ctx context.Context, orderID, userID int64, code string) (*usecase.CouponPreview, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, orderID, userID, code)
	}
	return &usecase.CouponPreview{
		Code:           code,
		DiscountAmount: decimal.NewFromInt(10),
		PayableAmount:  decimal.NewFromInt(90),
	}, nil
}

// ApplyCoupon returns the discounted order.
func (s CouponFacadeStub) ApplyCoupon(ctx context.Context, orderID, userID int64, code string) (*model.Order, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, orderID, userID, code)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

// RemoveCoupon returns the restored order.
func (s CouponFacadeStub) RemoveCoupon(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, orderID, userID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

// PaymentFacadeStub simulates payment settlement operations.
type PaymentFacadeStub struct {
	InitializeFn  func(context.Context, int64, int64, bool) (*usecase.InitializeOutcome, error)
	VerifyFn      func(context.Context, string, int64) (*model.SettlementResult, error)
	ChargeFn      func(context.Context, int64, int64, int64) (*model.SettlementResult, error)
	InstrumentsFn func(context.Context, int64) ([]model.PaymentInstrument, error)
	WebhookFn     func(context.Context, string, []byte, string) error
}

// InitializePayment returns a configured checkout handle.
func (s PaymentFacadeStub) InitializePayment(ctx context.Context, orderID, userID int64, saveInstrument bool) (*usecase.InitializeOutcome, error) {
	if s.InitializeFn != nil {
		return s.InitializeFn(ctx, orderID, userID, saveInstrument)
	}
	return &usecase.InitializeOutcome{
		Reference:        "ref",
		AuthorizationURL: "https://checkout.example/ref",
		AccessCode:       "access",
	}, nil
}

// VerifyPayment returns a configured settlement result.
func (s PaymentFacadeStub) VerifyPayment(ctx context.Context, reference string, userID int64) (*model.SettlementResult, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, reference, userID)
	}
	return &model.SettlementResult{
		Payment:     &model.Payment{Reference: reference, Status: model.PaymentStatusSuccess},
		OrderStatus: model.OrderStatusConfirmed,
	}, nil
}

// ChargeInstrument returns a configured settlement result.
func (s PaymentFacadeStub) ChargeInstrument(ctx context.Context, orderID, userID, instrumentID int64) (*model.SettlementResult, error) {
	if s.ChargeFn != nil {
		return s.ChargeFn(ctx, orderID, userID, instrumentID)
	}
	return &model.SettlementResult{
		Payment:     &model.Payment{OrderID: orderID, Status: model.PaymentStatusSuccess},
		OrderID:     orderID,
		OrderStatus: model.OrderStatusConfirmed,
	}, nil
}

// Instruments returns preconfigured credentials.
func (s PaymentFacadeStub) Instruments(ctx context.Context, userID int64) ([]model.PaymentInstrument, error) {
	if s.InstrumentsFn != nil {
		return s.InstrumentsFn(ctx, userID)
	}
	return []model.PaymentInstrument{{ID: 1, UserID: userID, Last4: "4081", Reusable: true}}, nil
}

// HandleWebhook delegates to the override.
func (s PaymentFacadeStub) HandleWebhook(ctx context.Context, provider string, payload []byte, signature string) error {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, provider, payload, signature)
	}
	return nil
}

// OrderingFacadeStub aggregates facade dependencies for HTTP layer tests.
type OrderingFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	CouponFacadeStub
	PaymentFacadeStub
}
