package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// PaymentRepository persists payment attempts and applies the shared
// settlement transition. SettleWebhook additionally runs the idempotency
// guard inside the same transaction as the settlement effects.
type PaymentRepository interface {
	Initialize(ctx context.Context, orderID, userID int64, reference string, amount decimal.Decimal) (*model.Payment, error)
	GetByReference(ctx context.Context, reference string) (*model.Payment, error)
	SuccessfulReference(ctx context.Context, orderID int64) (string, error)
	Settle(ctx context.Context, settlement *model.Settlement) (*model.SettlementResult, error)
	SettleWebhook(ctx context.Context, event *model.WebhookEvent, settlement *model.Settlement) (*model.SettlementResult, error)
}
