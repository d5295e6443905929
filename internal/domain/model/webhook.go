package model

import "time"

// WebhookEvent is a signature-verified gateway delivery with its
// content-derived fingerprints.
type WebhookEvent struct {
	Provider      string
	EventID       string
	Reference     string
	SignatureHash string
	PayloadHash   string
	Payload       []byte
}

// WebhookReceipt is the de-duplication ledger row for one delivered event,
// unique per (provider, signature hash). ProcessedAt is set only after the
// event's business effects have committed.
type WebhookReceipt struct {
	ID            int64
	Provider      string
	EventID       *string
	Reference     *string
	SignatureHash string
	PayloadHash   string
	FirstSeenAt   time.Time
	ProcessedAt   *time.Time
}
