package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
	"github.com/ajdiallo/chopnow/internal/domain/repository"
)

// CouponUseCase manages coupon admission on pending orders.
type CouponUseCase struct {
	coupons repository.CouponRepository
	orders  repository.OrderRepository
}

// NewCouponUseCase constructs CouponUseCase.
func NewCouponUseCase(coupons repository.CouponRepository, orders repository.OrderRepository) *CouponUseCase {
	return &CouponUseCase{coupons: coupons, orders: orders}
}

// CouponPreview is the outcome of validating a coupon against an order
// without reserving anything.
type CouponPreview struct {
	Code           string
	DiscountAmount decimal.Decimal
	PayableAmount  decimal.Decimal
}

// Validate checks a coupon against an order and previews the discount.
// Nothing is reserved; the authoritative admission check happens on Apply.
func (u *CouponUseCase) Validate(ctx context.Context, orderID, userID int64, code string) (*CouponPreview, error) {
	coupon, err := u.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotOwner
	}

	if err := coupon.UsableAt(time.Now()); err != nil {
		return nil, err
	}

	discount, payable, err := coupon.Discount(order.TotalAmount)
	if err != nil {
		return nil, err
	}

	return &CouponPreview{Code: coupon.Code, DiscountAmount: discount, PayableAmount: payable}, nil
}

// Apply reserves the coupon for the order, swapping out a previously applied
// coupon in the same transaction. Re-applying the same coupon is a no-op.
func (u *CouponUseCase) Apply(ctx context.Context, orderID, userID int64, code string) (*model.Order, error) {
	coupon, err := u.lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	return u.coupons.Apply(ctx, orderID, userID, coupon.ID)
}

// Remove releases the order's reserved coupon and restores its amounts.
func (u *CouponUseCase) Remove(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	return u.coupons.Remove(ctx, orderID, userID)
}

func (u *CouponUseCase) lookup(ctx context.Context, code string) (*model.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.coupons.GetByCode(ctx, code)
}
