package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCouponDiscount(t *testing.T) {
	cases := []struct {
		name     string
		coupon   Coupon
		total    string
		discount string
		payable  string
		err      error
	}{
		{
			name:     "twenty percent",
			coupon:   Coupon{DiscountType: DiscountTypePercentage, DiscountValue: dec("20")},
			total:    "5000",
			discount: "1000",
			payable:  "4000",
		},
		{
			name:     "fixed amount",
			coupon:   Coupon{DiscountType: DiscountTypeFixed, DiscountValue: dec("100")},
			total:    "500",
			discount: "100",
			payable:  "400",
		},
		{
			name:     "percentage rounds to cents",
			coupon:   Coupon{DiscountType: DiscountTypePercentage, DiscountValue: dec("33")},
			total:    "10.00",
			discount: "3.30",
			payable:  "6.70",
		},
		{
			name:   "fixed exceeds total",
			coupon: Coupon{DiscountType: DiscountTypeFixed, DiscountValue: dec("600")},
			total:  "500",
			err:    domainErrors.ErrCouponZeroesOrder,
		},
		{
			name:   "fixed equals total",
			coupon: Coupon{DiscountType: DiscountTypeFixed, DiscountValue: dec("500")},
			total:  "500",
			err:    domainErrors.ErrCouponZeroesOrder,
		},
		{
			name:   "hundred percent",
			coupon: Coupon{DiscountType: DiscountTypePercentage, DiscountValue: dec("100")},
			total:  "500",
			err:    domainErrors.ErrCouponZeroesOrder,
		},
		{
			name:   "over hundred percent",
			coupon: Coupon{DiscountType: DiscountTypePercentage, DiscountValue: dec("150")},
			total:  "500",
			err:    domainErrors.ErrCouponValueInvalid,
		},
		{
			name:   "negative value",
			coupon: Coupon{DiscountType: DiscountTypeFixed, DiscountValue: dec("-5")},
			total:  "500",
			err:    domainErrors.ErrCouponValueInvalid,
		},
		{
			name:   "unknown type",
			coupon: Coupon{DiscountType: "cashback", DiscountValue: dec("10")},
			total:  "500",
			err:    domainErrors.ErrCouponValueInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			discount, payable, err := tc.coupon.Discount(dec(tc.total))
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("discount returned error: %v", err)
			}
			if !discount.Equal(dec(tc.discount)) {
				t.Fatalf("discount = %s, want %s", discount, tc.discount)
			}
			if !payable.Equal(dec(tc.payable)) {
				t.Fatalf("payable = %s, want %s", payable, tc.payable)
			}
		})
	}
}

func TestCouponUsableAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	five := 5

	cases := []struct {
		name   string
		coupon Coupon
		err    error
	}{
		{"active without window", Coupon{IsActive: true}, nil},
		{"inactive", Coupon{IsActive: false}, domainErrors.ErrCouponInactive},
		{"not started", Coupon{IsActive: true, StartsAt: &future}, domainErrors.ErrCouponNotStarted},
		{"expired", Coupon{IsActive: true, ExpiresAt: &past}, domainErrors.ErrCouponExpired},
		{"within window", Coupon{IsActive: true, StartsAt: &past, ExpiresAt: &future}, nil},
		{"limit reached", Coupon{IsActive: true, MaxRedemptions: &five, RedemptionsCount: 5}, domainErrors.ErrCouponLimitReached},
		{"below limit", Coupon{IsActive: true, MaxRedemptions: &five, RedemptionsCount: 4}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.coupon.UsableAt(now); !errors.Is(err, tc.err) {
				t.Fatalf("UsableAt = %v, want %v", err, tc.err)
			}
		})
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: dec("12.50")}
	if got := item.Subtotal(); !got.Equal(dec("37.50")) {
		t.Fatalf("subtotal = %s, want 37.50", got)
	}
}
