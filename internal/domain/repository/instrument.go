package repository

import (
	"context"

	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// InstrumentRepository provides access to stored reusable payment credentials.
type InstrumentRepository interface {
	GetByID(ctx context.Context, id int64) (*model.PaymentInstrument, error)
	ListByUser(ctx context.Context, userID int64) ([]model.PaymentInstrument, error)
}
