package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

const paymentColumns = `id, order_id, reference, amount, status, gateway_response, paid_at, created_at`

func scanPayment(row rowScanner) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Reference, &p.Amount, &p.Status,
		&p.GatewayResponse, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Initialize(ctx context.Context, orderID, userID int64, reference string, amount decimal.Decimal) (*model.Payment, error) {
	var payment *model.Payment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrderTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return domainErrors.ErrNotOwner
		}
		if order.Status.Terminal() {
			return domainErrors.ErrOrderTerminal
		}

		existing, err := successfulReferenceTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if existing != "" {
			return domainErrors.AlreadyPaidError{Reference: existing}
		}

		const insert = `INSERT INTO payments (order_id, reference, amount, status)
                        VALUES ($1, $2, $3, $4) RETURNING id, created_at`
		p := &model.Payment{
			OrderID:   orderID,
			Reference: reference,
			Amount:    amount,
			Status:    model.PaymentStatusInitialized,
		}
		if err := tx.QueryRow(ctx, insert, orderID, reference, amount, p.Status).Scan(&p.ID, &p.CreatedAt); err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepository) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	return scanPayment(r.storage.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE reference=$1`, reference))
}

func (r *paymentRepository) SuccessfulReference(ctx context.Context, orderID int64) (string, error) {
	const query = `SELECT reference FROM payments WHERE order_id=$1 AND status='success'`
	var reference string
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return reference, nil
}

func successfulReferenceTx(ctx context.Context, tx pgx.Tx, orderID int64) (string, error) {
	const query = `SELECT reference FROM payments WHERE order_id=$1 AND status='success'`
	var reference string
	err := tx.QueryRow(ctx, query, orderID).Scan(&reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return reference, nil
}

func (r *paymentRepository) Settle(ctx context.Context, settlement *model.Settlement) (*model.SettlementResult, error) {
	var result *model.SettlementResult
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		result, err = r.storage.settleTx(ctx, tx, settlement)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settleTx is the shared settlement transition used by verify, webhook, and
// saved-instrument flows. An already successful payment short-circuits with
// no further effect.
func (s *Storage) settleTx(ctx context.Context, tx pgx.Tx, settlement *model.Settlement) (*model.SettlementResult, error) {
	payment, err := scanPayment(tx.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE reference=$1 FOR UPDATE`, settlement.Reference))
	if err != nil {
		return nil, err
	}

	if payment.Status == model.PaymentStatusSuccess {
		return &model.SettlementResult{Payment: payment, OrderID: payment.OrderID, AlreadySettled: true}, nil
	}

	order, err := lockOrderTx(ctx, tx, payment.OrderID)
	if err != nil {
		return nil, err
	}

	switch settlement.Status {
	case model.SettlementStatusSuccess:
		// At most one payment per order ever reaches success. A second
		// gateway-confirmed charge, e.g. a delayed hosted-checkout webhook
		// racing a saved-instrument debit, is recorded as superseded.
		winner, err := successfulReferenceTx(ctx, tx, order.ID)
		if err != nil {
			return nil, err
		}
		if winner != "" && winner != payment.Reference {
			const markSuperseded = `UPDATE payments
            SET status='superseded', gateway_response=$1, paid_at=COALESCE($2, NOW())
            WHERE id=$3`
			if _, err := tx.Exec(ctx, markSuperseded, settlement.RawResponse, settlement.PaidAt, payment.ID); err != nil {
				return nil, err
			}
			payment.Status = model.PaymentStatusSuperseded
			payment.PaidAt = settlement.PaidAt
			s.logger.Warn("successful charge lost the settlement race",
				slog.String("reference", payment.Reference),
				slog.String("winner", winner),
				slog.Int64("order_id", order.ID),
			)
			break
		}

		const markSuccess = `UPDATE payments
            SET status='success', gateway_response=$1, paid_at=COALESCE($2, NOW())
            WHERE id=$3`
		if _, err := tx.Exec(ctx, markSuccess, settlement.RawResponse, settlement.PaidAt, payment.ID); err != nil {
			return nil, err
		}
		payment.Status = model.PaymentStatusSuccess
		payment.PaidAt = settlement.PaidAt

		if settlement.SaveInstrument && settlement.Authorization != nil && settlement.Authorization.Reusable {
			if err := upsertInstrumentTx(ctx, tx, order.UserID, settlement.Authorization); err != nil {
				return nil, err
			}
		}

		// Advance the order only when the transition is currently legal;
		// an already-advanced order is a no-op, never an error.
		if order.Status.CanTransitionTo(model.OrderStatusConfirmed) {
			const confirm = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
			if _, err := tx.Exec(ctx, confirm, model.OrderStatusConfirmed, order.ID); err != nil {
				return nil, err
			}
			order.Status = model.OrderStatusConfirmed
		}

		const consume = `UPDATE coupon_redemptions
            SET status='consumed', updated_at=NOW()
            WHERE order_id=$1 AND status='reserved'`
		if _, err := tx.Exec(ctx, consume, order.ID); err != nil {
			return nil, err
		}

	case model.SettlementStatusFailed, model.SettlementStatusAbandoned:
		// A failed payment never auto-cancels or auto-confirms the order.
		status := model.PaymentStatusFailed
		if settlement.Status == model.SettlementStatusAbandoned {
			status = model.PaymentStatusAbandoned
		}
		const markFailed = `UPDATE payments SET status=$1, gateway_response=$2 WHERE id=$3`
		if _, err := tx.Exec(ctx, markFailed, status, settlement.RawResponse, payment.ID); err != nil {
			return nil, err
		}
		payment.Status = status

	default:
		// Gateway still reports the transaction in flight; nothing to settle.
	}

	result := &model.SettlementResult{
		Payment:       payment,
		OrderID:       order.ID,
		OrderStatus:   order.Status,
		TotalAmount:   order.TotalAmount,
		PayableAmount: order.PayableAmount,
	}

	const customer = `SELECT email FROM users WHERE id=$1`
	if err := tx.QueryRow(ctx, customer, order.UserID).Scan(&result.CustomerEmail); err != nil {
		return nil, err
	}
	items, err := orderItemsTx(ctx, tx, order.ID)
	if err != nil {
		return nil, err
	}
	result.Items = items

	s.logger.Info("payment settled",
		slog.String("reference", payment.Reference),
		slog.String("status", string(payment.Status)),
		slog.Int64("order_id", order.ID),
	)
	return result, nil
}

func upsertInstrumentTx(ctx context.Context, tx pgx.Tx, userID int64, auth *model.InstrumentAuthorization) error {
	const upsert = `INSERT INTO payment_instruments
            (user_id, authorization_code, card_type, last4, bank, signature, reusable)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (user_id, signature) DO UPDATE SET authorization_code = EXCLUDED.authorization_code`
	_, err := tx.Exec(ctx, upsert, userID, auth.AuthorizationCode, auth.CardType,
		auth.Last4, auth.Bank, auth.Signature, auth.Reusable)
	return err
}

