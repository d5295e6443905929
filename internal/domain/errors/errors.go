package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("not owner")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many attempts")

	ErrEmptyOrder       = errors.New("order has no items")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrOrderNotPending  = errors.New("order is not pending")
	ErrOrderTerminal    = errors.New("order is in a terminal status")
	ErrUnknownStatus    = errors.New("unknown order status")

	ErrCouponInactive     = errors.New("coupon is inactive")
	ErrCouponNotStarted   = errors.New("coupon is not valid yet")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponLimitReached = errors.New("coupon redemption limit reached")
	ErrCouponValueInvalid = errors.New("coupon discount value is invalid")
	ErrCouponZeroesOrder  = errors.New("coupon would reduce order to zero or below")
	ErrNoCouponApplied    = errors.New("no coupon applied to order")
	ErrRedemptionConsumed = errors.New("coupon redemption already consumed")

	ErrInstrumentNotReusable = errors.New("payment instrument is not reusable")
	ErrGatewayDeclined       = errors.New("gateway declined the charge")
	ErrBadSignature          = errors.New("invalid webhook signature")
)

// InvalidTransitionError reports an illegal order status change,
// naming both the current and the requested status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition from %s to %s", e.From, e.To)
}

// AlreadyPaidError signals that the order already has a successful payment.
// It carries the reference of that payment so the client can recover it.
type AlreadyPaidError struct {
	Reference string
}

func (e AlreadyPaidError) Error() string {
	return fmt.Sprintf("order already paid, reference %s", e.Reference)
}

// TransientStoreError classifies a storage failure the client may safely
// retry: lock wait timeouts, deadlocks, serialization failures. The
// transaction rolled back, so no partial state was left behind.
type TransientStoreError struct {
	Code string
	Err  error
}

func (e TransientStoreError) Error() string {
	return fmt.Sprintf("transient store failure (%s): %v", e.Code, e.Err)
}

func (e TransientStoreError) Unwrap() error {
	return e.Err
}

// GatewayError wraps a payment gateway failure. No local state was mutated
// before the remote call, so the operation is safe to retry.
type GatewayError struct {
	Op  string
	Err error
}

func (e GatewayError) Error() string {
	return fmt.Sprintf("gateway %s failed: %v", e.Op, e.Err)
}

func (e GatewayError) Unwrap() error {
	return e.Err
}
