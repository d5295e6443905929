package test

import (
	"context"
	"sync"

	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// NotifierStub records receipts handed to the dispatcher workers.
type NotifierStub struct {
	SendFn func(context.Context, model.Receipt) error

	mu   sync.Mutex
	Sent []model.Receipt
}

// SendReceipt records the receipt and delegates to the override.
func (s *NotifierStub) SendReceipt(ctx context.Context, r model.Receipt) error {
	if s.SendFn != nil {
		if err := s.SendFn(ctx, r); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, r)
	return nil
}

// Count reports how many receipts were delivered so far.
func (s *NotifierStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sent)
}

// ReceiptSinkStub captures receipts enqueued by use cases.
type ReceiptSinkStub struct {
	Receipts []model.Receipt
}

// Enqueue stores the receipt for assertions.
func (s *ReceiptSinkStub) Enqueue(r model.Receipt) {
	s.Receipts = append(s.Receipts, r)
}
