package handlers

import (
	"context"

	"github.com/ajdiallo/chopnow/internal/domain/model"
	"github.com/ajdiallo/chopnow/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, items []model.OrderItem, delivery model.DeliverySnapshot) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, orderID, userID int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID, userID int64) (*model.Order, error)
}

// CouponFacade provides coupon admission operations.
type CouponFacade interface {
	ValidateCoupon(ctx context.Context, orderID, userID int64, code string) (*usecase.CouponPreview, error)
	ApplyCoupon(ctx context.Context, orderID, userID int64, code string) (*model.Order, error)
	RemoveCoupon(ctx context.Context, orderID, userID int64) (*model.Order, error)
}

// PaymentFacade provides payment settlement operations.
type PaymentFacade interface {
	InitializePayment(ctx context.Context, orderID, userID int64, saveInstrument bool) (*usecase.InitializeOutcome, error)
	VerifyPayment(ctx context.Context, reference string, userID int64) (*model.SettlementResult, error)
	ChargeInstrument(ctx context.Context, orderID, userID, instrumentID int64) (*model.SettlementResult, error)
	Instruments(ctx context.Context, userID int64) ([]model.PaymentInstrument, error)
	HandleWebhook(ctx context.Context, provider string, payload []byte, signature string) error
}

// OrderingFacade aggregates the full set of operations used across handlers.
type OrderingFacade interface {
	AuthFacade
	OrderFacade
	CouponFacade
	PaymentFacade
}
