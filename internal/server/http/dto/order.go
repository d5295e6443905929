package dto

import "time"

// OrderItemRequest is one checkout line.
type OrderItemRequest struct {
	Name      string `json:"name" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	UnitPrice string `json:"unit_price" binding:"required"`
}

// DeliveryRequest is the delivery snapshot captured at checkout.
type DeliveryRequest struct {
	RecipientName  string `json:"recipient_name" binding:"required"`
	RecipientPhone string `json:"recipient_phone" binding:"required"`
	Street         string `json:"street" binding:"required"`
	City           string `json:"city" binding:"required"`
}

// CheckoutRequest creates a pending order.
type CheckoutRequest struct {
	Items    []OrderItemRequest `json:"items" binding:"required"`
	Delivery DeliveryRequest    `json:"delivery" binding:"required"`
}

// StatusUpdateRequest asks for an order status transition.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is one order line on the wire.
type OrderItemResponse struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderResponse represents an order on the wire.
type OrderResponse struct {
	ID             int64               `json:"id"`
	Status         string              `json:"status"`
	TotalAmount    string              `json:"total_amount"`
	DiscountAmount string              `json:"discount_amount"`
	PayableAmount  string              `json:"payable_amount"`
	CouponID       *int64              `json:"coupon_id,omitempty"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}
