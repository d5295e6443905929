package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
	"github.com/ajdiallo/chopnow/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Checkout creates a pending order from line items and a delivery snapshot.
func (u *OrderUseCase) Checkout(ctx context.Context, userID int64, items []model.OrderItem, delivery model.DeliverySnapshot) (*model.Order, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 || !item.UnitPrice.IsPositive() {
			return nil, domainErrors.ErrInvalidAmount
		}
		total = total.Add(item.Subtotal())
	}

	order := &model.Order{
		UserID:         userID,
		Status:         model.OrderStatusPending,
		TotalAmount:    total,
		DiscountAmount: decimal.Zero,
		PayableAmount:  total,
		Delivery:       delivery,
		Items:          items,
	}
	return u.orders.Create(ctx, order)
}

// ListByUser returns orders sorted by creation time.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Get fetches an order and enforces ownership.
func (u *OrderUseCase) Get(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotOwner
	}
	return order, nil
}

// UpdateStatus requests a status transition; the repository enforces the
// transition table under a row lock.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, raw string) (*model.Order, error) {
	status, err := model.ParseOrderStatus(raw)
	if err != nil {
		return nil, err
	}
	return u.orders.UpdateStatus(ctx, orderID, status)
}

// Cancel moves the order to cancelled, releasing any reserved coupon.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotOwner
	}
	return u.orders.UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
}
