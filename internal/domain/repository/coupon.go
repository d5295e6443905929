package repository

import (
	"context"

	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// CouponRepository owns coupon admission control. Apply and Remove run as
// single transactions covering reservation counters, the redemption row,
// and the order amounts.
type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	Apply(ctx context.Context, orderID, userID, couponID int64) (*model.Order, error)
	Remove(ctx context.Context, orderID, userID int64) (*model.Order, error)
}
