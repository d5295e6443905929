package model

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
)

// DiscountType selects how a coupon discount is computed.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

var hundred = decimal.NewFromInt(100)

// Coupon is a discount code with an optional redemption cap and validity window.
type Coupon struct {
	ID               int64
	Code             string
	DiscountType     DiscountType
	DiscountValue    decimal.Decimal
	MaxRedemptions   *int
	RedemptionsCount int
	StartsAt         *time.Time
	ExpiresAt        *time.Time
	IsActive         bool
	CreatedAt        time.Time
}

// UsableAt reports why the coupon cannot be redeemed at the given moment,
// or nil when it can. The capacity check here is advisory; the authoritative
// check is the conditional reservation update in storage.
func (c *Coupon) UsableAt(now time.Time) error {
	switch {
	case !c.IsActive:
		return domainErrors.ErrCouponInactive
	case c.StartsAt != nil && now.Before(*c.StartsAt):
		return domainErrors.ErrCouponNotStarted
	case c.ExpiresAt != nil && !now.Before(*c.ExpiresAt):
		return domainErrors.ErrCouponExpired
	case c.MaxRedemptions != nil && c.RedemptionsCount >= *c.MaxRedemptions:
		return domainErrors.ErrCouponLimitReached
	}
	return nil
}

// Discount computes the discount and resulting payable amount for a total.
// The discount is rounded to 2 decimal places before the payable amount is
// derived. A result that zeroes or inverts the order is rejected outright.
func (c *Coupon) Discount(total decimal.Decimal) (discount, payable decimal.Decimal, err error) {
	if c.DiscountValue.IsNegative() {
		return decimal.Zero, decimal.Zero, domainErrors.ErrCouponValueInvalid
	}

	switch c.DiscountType {
	case DiscountTypePercentage:
		if c.DiscountValue.GreaterThan(hundred) {
			return decimal.Zero, decimal.Zero, domainErrors.ErrCouponValueInvalid
		}
		discount = total.Mul(c.DiscountValue).Div(hundred)
	case DiscountTypeFixed:
		discount = c.DiscountValue
	default:
		return decimal.Zero, decimal.Zero, domainErrors.ErrCouponValueInvalid
	}

	discount = discount.Round(2)
	payable = total.Sub(discount)
	if !payable.IsPositive() {
		return decimal.Zero, decimal.Zero, domainErrors.ErrCouponZeroesOrder
	}
	return discount, payable, nil
}

// RedemptionStatus tracks the lifecycle of one coupon usage on one order.
type RedemptionStatus string

const (
	RedemptionStatusReserved RedemptionStatus = "reserved"
	RedemptionStatusConsumed RedemptionStatus = "consumed"
	RedemptionStatusReleased RedemptionStatus = "released"
)

// CouponRedemption binds a coupon usage to a single order.
// Consumed redemptions are permanent audit history and never mutate again.
type CouponRedemption struct {
	ID        int64
	CouponID  int64
	OrderID   int64
	UserID    int64
	Status    RedemptionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
