package repository

import (
	"context"

	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// UpdateStatus enforces the transition table under a row lock; moving to
// cancelled also releases a reserved coupon redemption and resets amounts.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error)
}
