package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ajdiallo/chopnow/internal/adapter/gateway"
	"github.com/ajdiallo/chopnow/internal/config"
	"github.com/ajdiallo/chopnow/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	NewCouponUseCase,
	newPaymentUseCase,
)

type paymentParams struct {
	fx.In

	Payments    repository.PaymentRepository
	Orders      repository.OrderRepository
	Instruments repository.InstrumentRepository
	Users       repository.UserRepository
	Gateway     gateway.Client
	Receipts    ReceiptSink
	Config      *config.Config
	Logger      *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Payments, p.Orders, p.Instruments, p.Users,
		p.Gateway, p.Receipts, p.Config.CallbackURL, p.Config.Currency, p.Logger)
}
