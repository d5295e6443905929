package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

const orderColumns = `id, user_id, status, total_amount, discount_amount, payable_amount, coupon_id,
                      recipient_name, recipient_phone, delivery_street, delivery_city, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.DiscountAmount, &o.PayableAmount,
		&o.CouponID, &o.Delivery.RecipientName, &o.Delivery.RecipientPhone,
		&o.Delivery.Street, &o.Delivery.City, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// lockOrderTx fetches the order row under an exclusive lock. Every mutation
// that depends on a prior read of order state goes through this.
func lockOrderTx(ctx context.Context, tx pgx.Tx, orderID int64) (*model.Order, error) {
	return scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, orderID))
}

func orderItemsTx(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, name, quantity, unit_price FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Name, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
                (user_id, status, total_amount, discount_amount, payable_amount,
                 recipient_name, recipient_phone, delivery_street, delivery_city)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.UserID, order.Status, order.TotalAmount, order.DiscountAmount, order.PayableAmount,
			order.Delivery.RecipientName, order.Delivery.RecipientPhone,
			order.Delivery.Street, order.Delivery.City,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, name, quantity, unit_price)
                            VALUES ($1, $2, $3, $4) RETURNING id`
		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			if err := tx.QueryRow(ctx, insertItem, order.ID, item.Name, item.Quantity, item.UnitPrice).Scan(&item.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	items, err := orderItemsTx(ctx, r.storage.pool, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrderTx(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if err := order.Status.Transition(to); err != nil {
			return err
		}

		if to == model.OrderStatusCancelled {
			if err := r.storage.releaseRedemptionForOrderTx(ctx, tx, order); err != nil {
				return err
			}
		}

		const update = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
		if _, err := tx.Exec(ctx, update, to, orderID); err != nil {
			return err
		}
		order.Status = to
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
