package model

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
)

// OrderStatus describes order fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusCompleted},
	OrderStatusCompleted:      {},
	OrderStatusCancelled:      {},
}

// ParseOrderStatus converts a wire value into OrderStatus.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if _, ok := orderTransitions[status]; !ok {
		return "", domainErrors.ErrUnknownStatus
	}
	return status, nil
}

// CanTransitionTo reports whether the transition is listed in the table.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// Transition validates the requested status change.
func (s OrderStatus) Transition(to OrderStatus) error {
	if !s.CanTransitionTo(to) {
		return domainErrors.InvalidTransitionError{From: string(s), To: string(to)}
	}
	return nil
}

// DeliverySnapshot captures delivery details as they were at checkout.
type DeliverySnapshot struct {
	RecipientName  string
	RecipientPhone string
	Street         string
	City           string
}

// OrderItem is a single order line.
type OrderItem struct {
	ID        int64
	OrderID   int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity times unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer food order.
// PayableAmount always equals TotalAmount minus DiscountAmount and stays positive.
type Order struct {
	ID             int64
	UserID         int64
	Status         OrderStatus
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	PayableAmount  decimal.Decimal
	CouponID       *int64
	Delivery       DeliverySnapshot
	Items          []OrderItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
