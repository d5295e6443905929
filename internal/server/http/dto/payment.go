package dto

import "time"

// InitializePaymentRequest starts hosted checkout for an order.
type InitializePaymentRequest struct {
	SaveInstrument bool `json:"save_instrument"`
}

// InitializePaymentResponse is the hosted checkout handle.
type InitializePaymentResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
}

// ChargeRequest debits a stored instrument for an order.
type ChargeRequest struct {
	InstrumentID int64 `json:"instrument_id" binding:"required"`
}

// PaymentResponse reports a payment outcome.
type PaymentResponse struct {
	Reference   string     `json:"reference"`
	Status      string     `json:"status"`
	OrderID     int64      `json:"order_id"`
	OrderStatus string     `json:"order_status,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// InstrumentResponse is a stored reusable credential on the wire.
type InstrumentResponse struct {
	ID       int64  `json:"id"`
	CardType string `json:"card_type"`
	Last4    string `json:"last4"`
	Bank     string `json:"bank"`
	Reusable bool   `json:"reusable"`
}

// ErrorResponse carries a structured reason for client errors.
type ErrorResponse struct {
	Error     string `json:"error"`
	Reference string `json:"reference,omitempty"`
}
