package test

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListByUserFn   func(context.Context, int64) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) (*model.Order, error)

	Created     []*model.Order
	Orders      []model.Order
	UpdateCalls []OrderUpdateCall
}

// OrderUpdateCall stores information about UpdateStatus invocations.
type OrderUpdateCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.Created = append(s.Created, order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	created := *order
	created.ID = int64(len(s.Created))
	created.Status = model.OrderStatusPending
	return &created, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, Status: to})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, to)
	}
	for _, o := range s.Orders {
		if o.ID == orderID {
			if err := o.Status.Transition(to); err != nil {
				return nil, err
			}
			order := o
			order.Status = to
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CouponRepositoryStub lets tests control coupon admission outcomes.
type CouponRepositoryStub struct {
	CreateFn    func(context.Context, *model.Coupon) (*model.Coupon, error)
	GetByCodeFn func(context.Context, string) (*model.Coupon, error)
	ApplyFn     func(context.Context, int64, int64, int64) (*model.Order, error)
	RemoveFn    func(context.Context, int64, int64) (*model.Order, error)

	Coupons    []model.Coupon
	ApplyCalls []CouponApplyCall
}

// CouponApplyCall records one Apply invocation.
type CouponApplyCall struct {
	OrderID  int64
	UserID   int64
	CouponID int64
}

// Create returns the coupon with an assigned identifier.
func (s *CouponRepositoryStub) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, coupon)
	}
	created := *coupon
	created.ID = int64(len(s.Coupons) + 1)
	s.Coupons = append(s.Coupons, created)
	return &created, nil
}

// GetByCode finds a coupon in the configured slice.
func (s *CouponRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	if s.GetByCodeFn != nil {
		return s.GetByCodeFn(ctx, code)
	}
	for _, c := range s.Coupons {
		if c.Code == code {
			coupon := c
			return &coupon, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Apply records the call and delegates to the override.
func (s *CouponRepositoryStub) Apply(ctx context.Context, orderID, userID, couponID int64) (*model.Order, error) {
	s.ApplyCalls = append(s.ApplyCalls, CouponApplyCall{OrderID: orderID, UserID: userID, CouponID: couponID})
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, orderID, userID, couponID)
	}
	return &model.Order{ID: orderID, UserID: userID, CouponID: &couponID}, nil
}

// Remove delegates to the override or returns a bare order.
func (s *CouponRepositoryStub) Remove(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, orderID, userID)
	}
	return &model.Order{ID: orderID, UserID: userID}, nil
}

// PaymentRepositoryStub lets tests control settlement outcomes.
type PaymentRepositoryStub struct {
	InitializeFn          func(context.Context, int64, int64, string, decimal.Decimal) (*model.Payment, error)
	GetByReferenceFn      func(context.Context, string) (*model.Payment, error)
	SuccessfulReferenceFn func(context.Context, int64) (string, error)
	SettleFn              func(context.Context, *model.Settlement) (*model.SettlementResult, error)
	SettleWebhookFn       func(context.Context, *model.WebhookEvent, *model.Settlement) (*model.SettlementResult, error)

	Initialized   []*model.Payment
	Settled       []*model.Settlement
	WebhookEvents []*model.WebhookEvent
}

// Initialize records the created payment attempt.
func (s *PaymentRepositoryStub) Initialize(ctx context.Context, orderID, userID int64, reference string, amount decimal.Decimal) (*model.Payment, error) {
	if s.InitializeFn != nil {
		return s.InitializeFn(ctx, orderID, userID, reference, amount)
	}
	payment := &model.Payment{
		ID:        int64(len(s.Initialized) + 1),
		OrderID:   orderID,
		Reference: reference,
		Amount:    amount,
		Status:    model.PaymentStatusInitialized,
	}
	s.Initialized = append(s.Initialized, payment)
	return payment, nil
}

// GetByReference searches recorded payments.
func (s *PaymentRepositoryStub) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	if s.GetByReferenceFn != nil {
		return s.GetByReferenceFn(ctx, reference)
	}
	for _, p := range s.Initialized {
		if p.Reference == reference {
			return p, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// SuccessfulReference returns the configured winner reference.
func (s *PaymentRepositoryStub) SuccessfulReference(ctx context.Context, orderID int64) (string, error) {
	if s.SuccessfulReferenceFn != nil {
		return s.SuccessfulReferenceFn(ctx, orderID)
	}
	return "", nil
}

// Settle records the settlement and delegates to the override.
func (s *PaymentRepositoryStub) Settle(ctx context.Context, settlement *model.Settlement) (*model.SettlementResult, error) {
	s.Settled = append(s.Settled, settlement)
	if s.SettleFn != nil {
		return s.SettleFn(ctx, settlement)
	}
	return &model.SettlementResult{
		Payment: &model.Payment{Reference: settlement.Reference, Status: model.PaymentStatusSuccess},
	}, nil
}

// SettleWebhook records the event and delegates to the override.
func (s *PaymentRepositoryStub) SettleWebhook(ctx context.Context, event *model.WebhookEvent, settlement *model.Settlement) (*model.SettlementResult, error) {
	s.WebhookEvents = append(s.WebhookEvents, event)
	if s.SettleWebhookFn != nil {
		return s.SettleWebhookFn(ctx, event, settlement)
	}
	return &model.SettlementResult{
		Payment: &model.Payment{Reference: settlement.Reference, Status: model.PaymentStatusSuccess},
	}, nil
}

// InstrumentRepositoryStub serves stored credentials from a slice.
type InstrumentRepositoryStub struct {
	GetByIDFn func(context.Context, int64) (*model.PaymentInstrument, error)
	ListFn    func(context.Context, int64) ([]model.PaymentInstrument, error)
	Items     []model.PaymentInstrument
}

// GetByID finds an instrument in the configured slice.
func (s *InstrumentRepositoryStub) GetByID(ctx context.Context, id int64) (*model.PaymentInstrument, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, in := range s.Items {
		if in.ID == id {
			instrument := in
			return &instrument, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns configured instruments.
func (s *InstrumentRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.PaymentInstrument, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return s.Items, nil
}
