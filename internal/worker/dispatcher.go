package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ajdiallo/chopnow/internal/adapter/receipt"
	"github.com/ajdiallo/chopnow/internal/domain/model"
)

// ReceiptDispatcher delivers settlement receipts off the request path.
// Settlement transactions commit first; a receipt that cannot be delivered
// is logged and dropped, never rolled back into the settlement.
type ReceiptDispatcher struct {
	notifier    receipt.Notifier
	sendTimeout time.Duration
	workers     int
	logger      *slog.Logger

	jobs    chan model.Receipt
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	stopped bool
}

// NewReceiptDispatcher constructs the dispatch worker pool.
func NewReceiptDispatcher(notifier receipt.Notifier, workers, queueSize int, logger *slog.Logger) *ReceiptDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &ReceiptDispatcher{
		notifier:    notifier,
		sendTimeout: 10 * time.Second,
		workers:     workers,
		logger:      logger,
		jobs:        make(chan model.Receipt, queueSize),
	}
}

// Start launches background delivery workers.
func (d *ReceiptDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop closes the queue, lets workers drain receipts already accepted, and
// waits for in-flight deliveries to finish.
func (d *ReceiptDispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.jobs)
	}
	d.mu.Unlock()

	d.wg.Wait()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
}

// Enqueue hands a receipt to the pool without blocking. A full queue or a
// stopped dispatcher drops the receipt; delivery is best-effort by contract.
func (d *ReceiptDispatcher) Enqueue(r model.Receipt) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		d.logger.Warn("dispatcher stopped, dropping receipt",
			slog.Int64("order_id", r.OrderID),
			slog.String("reference", r.Reference),
		)
		return
	}
	select {
	case d.jobs <- r:
	default:
		d.logger.Warn("receipt queue full, dropping receipt",
			slog.Int64("order_id", r.OrderID),
			slog.String("reference", r.Reference),
		)
	}
}

func (d *ReceiptDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-d.jobs:
			if !ok {
				return
			}
			d.deliver(ctx, r)
		}
	}
}

func (d *ReceiptDispatcher) deliver(ctx context.Context, r model.Receipt) {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	if err := d.notifier.SendReceipt(sendCtx, r); err != nil {
		d.logger.Error("receipt delivery failed",
			slog.Int64("order_id", r.OrderID),
			slog.String("reference", r.Reference),
			slog.String("error", err.Error()),
		)
		return
	}
	d.logger.Info("receipt delivered",
		slog.Int64("order_id", r.OrderID),
		slog.String("reference", r.Reference),
	)
}
