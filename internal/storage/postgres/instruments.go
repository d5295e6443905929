package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

const instrumentColumns = `id, user_id, authorization_code, card_type, last4, bank, signature, reusable, created_at`

func scanInstrument(row rowScanner) (*model.PaymentInstrument, error) {
	var in model.PaymentInstrument
	err := row.Scan(&in.ID, &in.UserID, &in.AuthorizationCode, &in.CardType,
		&in.Last4, &in.Bank, &in.Signature, &in.Reusable, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &in, nil
}

func (r *instrumentRepository) GetByID(ctx context.Context, id int64) (*model.PaymentInstrument, error) {
	return scanInstrument(r.storage.pool.QueryRow(ctx,
		`SELECT `+instrumentColumns+` FROM payment_instruments WHERE id=$1`, id))
}

func (r *instrumentRepository) ListByUser(ctx context.Context, userID int64) ([]model.PaymentInstrument, error) {
	const query = `SELECT ` + instrumentColumns + ` FROM payment_instruments
                   WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PaymentInstrument
	for rows.Next() {
		in, err := scanInstrument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
