package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ajdiallo/chopnow/internal/adapter/gateway"
	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
	"github.com/ajdiallo/chopnow/internal/domain/repository"
)

// ReceiptSink accepts settlement receipts for post-commit delivery.
type ReceiptSink interface {
	Enqueue(r model.Receipt)
}

// PaymentUseCase coordinates initialize, verify, webhook, and
// saved-instrument settlement flows. Gateway calls always happen outside
// storage transactions.
type PaymentUseCase struct {
	payments    repository.PaymentRepository
	orders      repository.OrderRepository
	instruments repository.InstrumentRepository
	users       repository.UserRepository
	gateway     gateway.Client
	receipts    ReceiptSink
	callbackURL string
	currency    string
	logger      *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	instruments repository.InstrumentRepository,
	users repository.UserRepository,
	gw gateway.Client,
	receipts ReceiptSink,
	callbackURL, currency string,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		payments:    payments,
		orders:      orders,
		instruments: instruments,
		users:       users,
		gateway:     gw,
		receipts:    receipts,
		callbackURL: callbackURL,
		currency:    currency,
		logger:      logger,
	}
}

// InitializeOutcome is the hosted checkout handle for a new payment.
type InitializeOutcome struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
}

// Initialize creates a payment attempt and starts hosted checkout.
func (u *PaymentUseCase) Initialize(ctx context.Context, orderID, userID int64, saveInstrument bool) (*InitializeOutcome, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotOwner
	}
	if order.Status.Terminal() {
		return nil, domainErrors.ErrOrderTerminal
	}

	if existing, err := u.payments.SuccessfulReference(ctx, orderID); err != nil {
		return nil, err
	} else if existing != "" {
		return nil, domainErrors.AlreadyPaidError{Reference: existing}
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	initialized, err := u.gateway.Initialize(ctx, gateway.InitializeRequest{
		Email:       user.Email,
		Amount:      order.PayableAmount,
		Reference:   reference,
		CallbackURL: u.callbackURL,
		Metadata: map[string]any{
			"order_id":        orderID,
			"save_instrument": saveInstrument,
		},
	})
	if err != nil {
		return nil, err
	}

	// The row insert re-checks the order under lock; a concurrent success
	// surfaces as AlreadyPaidError carrying the winning reference.
	if _, err := u.payments.Initialize(ctx, orderID, userID, reference, order.PayableAmount); err != nil {
		return nil, err
	}

	return &InitializeOutcome{
		Reference:        reference,
		AuthorizationURL: initialized.AuthorizationURL,
		AccessCode:       initialized.AccessCode,
	}, nil
}

// Verify pulls the transaction outcome from the gateway and applies the
// shared settlement transition.
func (u *PaymentUseCase) Verify(ctx context.Context, reference string, userID int64) (*model.SettlementResult, error) {
	payment, err := u.payments.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, payment.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotOwner
	}

	if payment.Status == model.PaymentStatusSuccess {
		return &model.SettlementResult{Payment: payment, OrderID: order.ID, OrderStatus: order.Status, AlreadySettled: true}, nil
	}

	settlement, err := u.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	result, err := u.payments.Settle(ctx, settlement)
	if err != nil {
		return nil, err
	}
	u.dispatchReceipt(result)
	return result, nil
}

// ChargeInstrument debits a stored reusable credential for the order.
// Both success and decline leave a payment row behind for audit.
func (u *PaymentUseCase) ChargeInstrument(ctx context.Context, orderID, userID, instrumentID int64) (*model.SettlementResult, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotOwner
	}
	if order.Status.Terminal() {
		return nil, domainErrors.ErrOrderTerminal
	}

	if existing, err := u.payments.SuccessfulReference(ctx, orderID); err != nil {
		return nil, err
	} else if existing != "" {
		return nil, domainErrors.AlreadyPaidError{Reference: existing}
	}

	instrument, err := u.instruments.GetByID(ctx, instrumentID)
	if err != nil {
		return nil, err
	}
	if instrument.UserID != userID {
		// A foreign credential is indistinguishable from a missing one.
		return nil, domainErrors.ErrNotFound
	}
	if !instrument.Reusable {
		return nil, domainErrors.ErrInstrumentNotReusable
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	if _, err := u.payments.Initialize(ctx, orderID, userID, reference, order.PayableAmount); err != nil {
		return nil, err
	}

	settlement, err := u.gateway.ChargeAuthorization(ctx, gateway.ChargeRequest{
		Email:             user.Email,
		Amount:            order.PayableAmount,
		AuthorizationCode: instrument.AuthorizationCode,
		Reference:         reference,
		Metadata:          map[string]any{"order_id": orderID},
	})
	if err != nil {
		// The attempt stays recorded as initialized; the gateway was never
		// confirmed to have debited anything.
		return nil, err
	}

	result, err := u.payments.Settle(ctx, settlement)
	if err != nil {
		return nil, err
	}
	u.dispatchReceipt(result)

	if settlement.Status != model.SettlementStatusSuccess {
		return result, domainErrors.ErrGatewayDeclined
	}
	return result, nil
}

// HandleWebhook verifies, dedupes, and settles a pushed gateway event.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, provider string, payload []byte, signature string) error {
	if provider != gateway.Provider {
		return domainErrors.ErrNotFound
	}
	if signature == "" || !u.gateway.VerifyWebhookSignature(payload, signature) {
		return domainErrors.ErrBadSignature
	}

	eventType, eventID, reference, settlement, err := u.gateway.ParseWebhook(payload)
	if err != nil {
		return err
	}

	event := &model.WebhookEvent{
		Provider:      provider,
		EventID:       eventID,
		Reference:     reference,
		SignatureHash: fingerprint([]byte(signature)),
		PayloadHash:   fingerprint(payload),
		Payload:       payload,
	}

	result, err := u.payments.SettleWebhook(ctx, event, settlement)
	if err != nil {
		return err
	}
	if result.AlreadySettled {
		u.logger.Info("webhook replay discarded",
			slog.String("provider", provider),
			slog.String("event", eventType),
			slog.String("reference", reference),
		)
		return nil
	}
	u.dispatchReceipt(result)
	return nil
}

func (u *PaymentUseCase) dispatchReceipt(result *model.SettlementResult) {
	if result == nil || result.AlreadySettled || result.Payment == nil {
		return
	}
	switch result.Payment.Status {
	case model.PaymentStatusSuccess, model.PaymentStatusFailed, model.PaymentStatusAbandoned:
	default:
		return
	}
	u.receipts.Enqueue(model.Receipt{
		CustomerEmail: result.CustomerEmail,
		OrderID:       result.OrderID,
		Reference:     result.Payment.Reference,
		Status:        result.Payment.Status,
		LineItems:     result.Items,
		TotalAmount:   result.TotalAmount,
		Currency:      u.currency,
	})
}

// Instruments lists the user's stored reusable credentials.
func (u *PaymentUseCase) Instruments(ctx context.Context, userID int64) ([]model.PaymentInstrument, error) {
	return u.instruments.ListByUser(ctx, userID)
}

func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
