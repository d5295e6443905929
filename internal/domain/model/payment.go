package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus describes payment progression for an order.
type PaymentStatus string

const (
	PaymentStatusInitialized PaymentStatus = "initialized"
	PaymentStatusSuccess     PaymentStatus = "success"
	PaymentStatusFailed      PaymentStatus = "failed"
	PaymentStatusAbandoned   PaymentStatus = "abandoned"
	// PaymentStatusSuperseded records a gateway-confirmed charge that lost
	// the settlement race: a sibling payment for the same order succeeded
	// first. The charge is kept on the audit trail for reconciliation but
	// never confirms the order.
	PaymentStatusSuperseded PaymentStatus = "superseded"
)

// Payment is one payment attempt bound to a gateway reference.
// At most one payment per order ever reaches success.
type Payment struct {
	ID              int64
	OrderID         int64
	Reference       string
	Amount          decimal.Decimal
	Status          PaymentStatus
	GatewayResponse []byte
	PaidAt          *time.Time
	CreatedAt       time.Time
}

// SettlementStatus is the remote outcome reported by the gateway.
type SettlementStatus string

const (
	SettlementStatusSuccess   SettlementStatus = "success"
	SettlementStatusFailed    SettlementStatus = "failed"
	SettlementStatusAbandoned SettlementStatus = "abandoned"
	SettlementStatusPending   SettlementStatus = "pending"
)

// InstrumentAuthorization is the reusable credential a gateway may return
// alongside a successful charge.
type InstrumentAuthorization struct {
	AuthorizationCode string
	CardType          string
	Last4             string
	Bank              string
	Signature         string
	Reusable          bool
}

// Settlement carries a gateway-reported payment outcome into the shared
// settlement transition.
type Settlement struct {
	Reference      string
	Status         SettlementStatus
	PaidAt         *time.Time
	Authorization  *InstrumentAuthorization
	SaveInstrument bool
	RawResponse    []byte
}

// SettlementResult reports what the settlement transition did.
type SettlementResult struct {
	Payment        *Payment
	OrderID        int64
	OrderStatus    OrderStatus
	AlreadySettled bool
	CustomerEmail  string
	Items          []OrderItem
	TotalAmount    decimal.Decimal
	PayableAmount  decimal.Decimal
}

// PaymentInstrument is a stored reusable credential for gateway debits.
type PaymentInstrument struct {
	ID                int64
	UserID            int64
	AuthorizationCode string
	CardType          string
	Last4             string
	Bank              string
	Signature         string
	Reusable          bool
	CreatedAt         time.Time
}

// Receipt is the notification payload dispatched after settlement commits.
type Receipt struct {
	CustomerEmail string
	OrderID       int64
	Reference     string
	Status        PaymentStatus
	LineItems     []OrderItem
	TotalAmount   decimal.Decimal
	Currency      string
}
