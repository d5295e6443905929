package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

const couponColumns = `id, code, discount_type, discount_value, max_redemptions, redemptions_count,
                       starts_at, expires_at, is_active, created_at`

func scanCoupon(row rowScanner) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MaxRedemptions,
		&c.RedemptionsCount, &c.StartsAt, &c.ExpiresAt, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	const query = `INSERT INTO coupons
            (code, discount_type, discount_value, max_redemptions, starts_at, expires_at, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, redemptions_count, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		coupon.Code, coupon.DiscountType, coupon.DiscountValue, coupon.MaxRedemptions,
		coupon.StartsAt, coupon.ExpiresAt, coupon.IsActive,
	).Scan(&coupon.ID, &coupon.RedemptionsCount, &coupon.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return coupon, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return scanCoupon(r.storage.pool.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code=$1`, code))
}

// reserveCouponTx increments the redemption counter in a single conditional
// update. The WHERE clause carries the full admission check, so two
// concurrent reservations can never both win the last slot.
func (s *Storage) reserveCouponTx(ctx context.Context, tx pgx.Tx, couponID int64) error {
	const reserve = `UPDATE coupons
        SET redemptions_count = redemptions_count + 1
        WHERE id=$1 AND is_active
          AND (starts_at IS NULL OR starts_at <= NOW())
          AND (expires_at IS NULL OR expires_at > NOW())
          AND (max_redemptions IS NULL OR redemptions_count < max_redemptions)`
	tag, err := tx.Exec(ctx, reserve, couponID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Lost the reservation. Re-read the row to name the reason.
	coupon, err := scanCoupon(tx.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id=$1`, couponID))
	if err != nil {
		return err
	}
	if reason := coupon.UsableAt(time.Now()); reason != nil {
		return reason
	}
	return domainErrors.ErrCouponLimitReached
}

// releaseCouponTx returns one redemption slot, floored at zero.
func (s *Storage) releaseCouponTx(ctx context.Context, tx pgx.Tx, couponID int64) error {
	const release = `UPDATE coupons
        SET redemptions_count = GREATEST(redemptions_count - 1, 0)
        WHERE id=$1`
	_, err := tx.Exec(ctx, release, couponID)
	return err
}

func lockRedemptionTx(ctx context.Context, tx pgx.Tx, orderID int64) (*model.CouponRedemption, error) {
	const query = `SELECT id, coupon_id, order_id, user_id, status, created_at, updated_at
                   FROM coupon_redemptions WHERE order_id=$1 FOR UPDATE`
	var red model.CouponRedemption
	err := tx.QueryRow(ctx, query, orderID).Scan(&red.ID, &red.CouponID, &red.OrderID,
		&red.UserID, &red.Status, &red.CreatedAt, &red.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &red, nil
}

func setRedemptionTx(ctx context.Context, tx pgx.Tx, redemptionID, couponID int64, status model.RedemptionStatus) error {
	const update = `UPDATE coupon_redemptions SET coupon_id=$1, status=$2, updated_at=NOW() WHERE id=$3`
	_, err := tx.Exec(ctx, update, couponID, status, redemptionID)
	return err
}

func (r *couponRepository) Apply(ctx context.Context, orderID, userID, couponID int64) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrderTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return domainErrors.ErrNotOwner
		}
		if order.Status != model.OrderStatusPending {
			return domainErrors.ErrOrderNotPending
		}

		coupon, err := scanCoupon(tx.QueryRow(ctx,
			`SELECT `+couponColumns+` FROM coupons WHERE id=$1 FOR UPDATE`, couponID))
		if err != nil {
			return err
		}

		discount, payable, err := coupon.Discount(order.TotalAmount)
		if err != nil {
			return err
		}

		redemption, err := lockRedemptionTx(ctx, tx, orderID)
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			const insert = `INSERT INTO coupon_redemptions (coupon_id, order_id, user_id, status)
                            VALUES ($1, $2, $3, $4)`
			if _, err := tx.Exec(ctx, insert, couponID, orderID, userID, model.RedemptionStatusReserved); err != nil {
				return err
			}
			if err := r.storage.reserveCouponTx(ctx, tx, couponID); err != nil {
				return err
			}
		case err != nil:
			return err
		case redemption.Status == model.RedemptionStatusConsumed:
			return domainErrors.ErrRedemptionConsumed
		case redemption.CouponID == couponID && redemption.Status == model.RedemptionStatusReserved:
			// Idempotent re-apply.
		case redemption.CouponID == couponID:
			if err := r.storage.reserveCouponTx(ctx, tx, couponID); err != nil {
				return err
			}
			if err := setRedemptionTx(ctx, tx, redemption.ID, couponID, model.RedemptionStatusReserved); err != nil {
				return err
			}
		default:
			// Swap: release the old coupon's slot, then reserve the new one.
			if redemption.Status == model.RedemptionStatusReserved {
				if err := r.storage.releaseCouponTx(ctx, tx, redemption.CouponID); err != nil {
					return err
				}
			}
			if err := r.storage.reserveCouponTx(ctx, tx, couponID); err != nil {
				return err
			}
			if err := setRedemptionTx(ctx, tx, redemption.ID, couponID, model.RedemptionStatusReserved); err != nil {
				return err
			}
		}

		const update = `UPDATE orders
            SET coupon_id=$1, discount_amount=$2, payable_amount=$3, updated_at=NOW()
            WHERE id=$4`
		if _, err := tx.Exec(ctx, update, couponID, discount, payable, orderID); err != nil {
			return err
		}

		order.CouponID = &couponID
		order.DiscountAmount = discount
		order.PayableAmount = payable
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *couponRepository) Remove(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrderTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return domainErrors.ErrNotOwner
		}
		if order.Status != model.OrderStatusPending {
			return domainErrors.ErrOrderNotPending
		}
		if order.CouponID == nil {
			return domainErrors.ErrNoCouponApplied
		}

		redemption, err := lockRedemptionTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if redemption.Status == model.RedemptionStatusConsumed {
			return domainErrors.ErrRedemptionConsumed
		}
		if redemption.Status == model.RedemptionStatusReserved {
			if err := r.storage.releaseCouponTx(ctx, tx, redemption.CouponID); err != nil {
				return err
			}
			if err := setRedemptionTx(ctx, tx, redemption.ID, redemption.CouponID, model.RedemptionStatusReleased); err != nil {
				return err
			}
		}

		if err := resetOrderAmountsTx(ctx, tx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func resetOrderAmountsTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	const update = `UPDATE orders
        SET coupon_id=NULL, discount_amount=0, payable_amount=total_amount, updated_at=NOW()
        WHERE id=$1`
	if _, err := tx.Exec(ctx, update, order.ID); err != nil {
		return err
	}
	order.CouponID = nil
	order.DiscountAmount = decimal.Zero
	order.PayableAmount = order.TotalAmount
	return nil
}

// releaseRedemptionForOrderTx is the cancellation path: a reserved redemption
// gives its slot back and the order amounts reset; a consumed redemption is
// permanent audit history and stays untouched.
func (s *Storage) releaseRedemptionForOrderTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	redemption, err := lockRedemptionTx(ctx, tx, order.ID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if redemption.Status != model.RedemptionStatusReserved {
		return nil
	}

	if err := s.releaseCouponTx(ctx, tx, redemption.CouponID); err != nil {
		return err
	}
	if err := setRedemptionTx(ctx, tx, redemption.ID, redemption.CouponID, model.RedemptionStatusReleased); err != nil {
		return err
	}
	if err := resetOrderAmountsTx(ctx, tx, order); err != nil {
		return err
	}

	s.logger.Info("released coupon reservation",
		slog.Int64("order_id", order.ID),
		slog.Int64("coupon_id", redemption.CouponID),
	)
	return nil
}
