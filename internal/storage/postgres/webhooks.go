package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// SettleWebhook gates the settlement transition behind the idempotency
// receipt. The receipt is marked processed in the same transaction as the
// business effects, so a crash mid-processing leaves it unprocessed and the
// next redelivery retries.
func (r *paymentRepository) SettleWebhook(ctx context.Context, event *model.WebhookEvent, settlement *model.Settlement) (*model.SettlementResult, error) {
	var result *model.SettlementResult
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		receiptID, processed, err := beginWebhookReceiptTx(ctx, tx, event)
		if err != nil {
			return err
		}
		if processed {
			result = &model.SettlementResult{AlreadySettled: true}
			return nil
		}

		settled, err := r.storage.settleTx(ctx, tx, settlement)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				// Event references a payment this system never created.
				// Acknowledge it so the gateway stops redelivering.
				result = &model.SettlementResult{AlreadySettled: true}
				return markWebhookProcessedTx(ctx, tx, receiptID)
			}
			return err
		}
		result = settled
		return markWebhookProcessedTx(ctx, tx, receiptID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// beginWebhookReceiptTx inserts the receipt row if absent, otherwise locks
// the existing row. Returns processed=true when a prior delivery already
// committed its effects.
func beginWebhookReceiptTx(ctx context.Context, tx pgx.Tx, event *model.WebhookEvent) (int64, bool, error) {
	const insert = `INSERT INTO webhook_events (provider, event_id, reference, signature_hash, payload_hash)
        VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
        ON CONFLICT (provider, signature_hash) DO NOTHING
        RETURNING id`
	var id int64
	err := tx.QueryRow(ctx, insert, event.Provider, event.EventID, event.Reference,
		event.SignatureHash, event.PayloadHash).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, err
	}

	// Seen before: lock the row so concurrent handlers of the same event
	// serialize instead of double-applying.
	const fetch = `SELECT id, processed_at FROM webhook_events
                   WHERE provider=$1 AND signature_hash=$2 FOR UPDATE`
	var receipt model.WebhookReceipt
	if err := tx.QueryRow(ctx, fetch, event.Provider, event.SignatureHash).Scan(&receipt.ID, &receipt.ProcessedAt); err != nil {
		return 0, false, err
	}
	return receipt.ID, receipt.ProcessedAt != nil, nil
}

func markWebhookProcessedTx(ctx context.Context, tx pgx.Tx, receiptID int64) error {
	const mark = `UPDATE webhook_events SET processed_at=NOW() WHERE id=$1`
	_, err := tx.Exec(ctx, mark, receiptID)
	return err
}
