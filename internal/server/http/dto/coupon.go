package dto

// CouponRequest applies or validates a coupon code against an order.
type CouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateCouponRequest previews a coupon against an order.
type ValidateCouponRequest struct {
	OrderID int64  `json:"order_id" binding:"required"`
	Code    string `json:"code" binding:"required"`
}

// CouponPreviewResponse is the validation outcome.
type CouponPreviewResponse struct {
	Code           string `json:"code"`
	DiscountAmount string `json:"discount_amount"`
	PayableAmount  string `json:"payable_amount"`
}
