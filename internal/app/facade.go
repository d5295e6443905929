package app

import (
	"context"

	"github.com/ajdiallo/chopnow/internal/domain/model"
	"github.com/ajdiallo/chopnow/internal/usecase"
)

// OrderingFacade aggregates the application use cases behind one surface
// consumed by HTTP handlers.
type OrderingFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	coupons  *usecase.CouponUseCase
	payments *usecase.PaymentUseCase
}

// NewOrderingFacade constructs the facade.
func NewOrderingFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, coupons *usecase.CouponUseCase, payments *usecase.PaymentUseCase) *OrderingFacade {
	return &OrderingFacade{auth: auth, orders: orders, coupons: coupons, payments: payments}
}

func (f *OrderingFacade) Register(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password)
	return token, err
}

func (f *OrderingFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *OrderingFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *OrderingFacade) Checkout(ctx context.Context, userID int64, items []model.OrderItem, delivery model.DeliverySnapshot) (*model.Order, error) {
	return f.orders.Checkout(ctx, userID, items, delivery)
}

func (f *OrderingFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *OrderingFacade) Order(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	return f.orders.Get(ctx, orderID, userID)
}

func (f *OrderingFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *OrderingFacade) CancelOrder(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID, userID)
}

func (f *OrderingFacade) ValidateCoupon(ctx context.Context, orderID, userID int64, code string) (*usecase.CouponPreview, error) {
	return f.coupons.Validate(ctx, orderID, userID, code)
}

func (f *OrderingFacade) ApplyCoupon(ctx context.Context, orderID, userID int64, code string) (*model.Order, error) {
	return f.coupons.Apply(ctx, orderID, userID, code)
}

func (f *OrderingFacade) RemoveCoupon(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	return f.coupons.Remove(ctx, orderID, userID)
}

func (f *OrderingFacade) InitializePayment(ctx context.Context, orderID, userID int64, saveInstrument bool) (*usecase.InitializeOutcome, error) {
	return f.payments.Initialize(ctx, orderID, userID, saveInstrument)
}

func (f *OrderingFacade) VerifyPayment(ctx context.Context, reference string, userID int64) (*model.SettlementResult, error) {
	return f.payments.Verify(ctx, reference, userID)
}

func (f *OrderingFacade) ChargeInstrument(ctx context.Context, orderID, userID, instrumentID int64) (*model.SettlementResult, error) {
	return f.payments.ChargeInstrument(ctx, orderID, userID, instrumentID)
}

func (f *OrderingFacade) Instruments(ctx context.Context, userID int64) ([]model.PaymentInstrument, error) {
	return f.payments.Instruments(ctx, userID)
}

func (f *OrderingFacade) HandleWebhook(ctx context.Context, provider string, payload []byte, signature string) error {
	return f.payments.HandleWebhook(ctx, provider, payload, signature)
}
