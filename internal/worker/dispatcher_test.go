package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ajdiallo/chopnow/internal/domain/model"
	testhelpers "github.com/ajdiallo/chopnow/internal/test"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestReceiptDispatcherDelivers(t *testing.T) {
	notifier := &testhelpers.NotifierStub{}
	dispatcher := NewReceiptDispatcher(notifier, 2, 8, newTestLogger())
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	for i := int64(1); i <= 5; i++ {
		dispatcher.Enqueue(model.Receipt{OrderID: i, Reference: "ref"})
	}

	waitFor(t, func() bool { return notifier.Count() == 5 })
}

func TestReceiptDispatcherSurvivesDeliveryFailure(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	notifier := &testhelpers.NotifierStub{SendFn: func(ctx context.Context, r model.Receipt) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if r.OrderID == 1 {
			return errors.New("notifier down")
		}
		return nil
	}}
	dispatcher := NewReceiptDispatcher(notifier, 1, 8, newTestLogger())
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	dispatcher.Enqueue(model.Receipt{OrderID: 1})
	dispatcher.Enqueue(model.Receipt{OrderID: 2})

	// The failed delivery is dropped; the next receipt still goes out.
	waitFor(t, func() bool { return notifier.Count() == 1 })
	if notifier.Sent[0].OrderID != 2 {
		t.Fatalf("expected receipt 2 delivered, got %d", notifier.Sent[0].OrderID)
	}
}

func TestReceiptDispatcherDropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	notifier := &testhelpers.NotifierStub{SendFn: func(ctx context.Context, r model.Receipt) error {
		<-release
		return nil
	}}
	dispatcher := NewReceiptDispatcher(notifier, 1, 1, newTestLogger())
	dispatcher.Start(context.Background())

	// One in flight, one queued, the rest dropped without blocking.
	for i := int64(1); i <= 5; i++ {
		dispatcher.Enqueue(model.Receipt{OrderID: i})
	}
	close(release)
	dispatcher.Stop()

	if notifier.Count() > 2 {
		t.Fatalf("expected at most 2 deliveries, got %d", notifier.Count())
	}
}

func TestReceiptDispatcherStopDrainsQueue(t *testing.T) {
	gate := make(chan struct{})
	notifier := &testhelpers.NotifierStub{SendFn: func(ctx context.Context, r model.Receipt) error {
		<-gate
		return nil
	}}
	dispatcher := NewReceiptDispatcher(notifier, 1, 4, newTestLogger())
	dispatcher.Start(context.Background())

	// One in flight, three sitting in the queue when Stop is called.
	for i := int64(1); i <= 4; i++ {
		dispatcher.Enqueue(model.Receipt{OrderID: i, Reference: "ref"})
	}
	close(gate)
	dispatcher.Stop()

	if notifier.Count() != 4 {
		t.Fatalf("expected all 4 queued receipts delivered before stop, got %d", notifier.Count())
	}

	// After stop the queue is closed; late receipts are dropped, not sent.
	dispatcher.Enqueue(model.Receipt{OrderID: 5, Reference: "ref"})
	if notifier.Count() != 4 {
		t.Fatalf("expected receipt after stop to be dropped, got %d deliveries", notifier.Count())
	}
}

func TestReceiptDispatcherStopWaits(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	notifier := &testhelpers.NotifierStub{SendFn: func(ctx context.Context, r model.Receipt) error {
		close(started)
		<-release
		return nil
	}}
	dispatcher := NewReceiptDispatcher(notifier, 1, 4, newTestLogger())
	dispatcher.Start(context.Background())

	dispatcher.Enqueue(model.Receipt{OrderID: 1})
	<-started

	done := make(chan struct{})
	go func() {
		dispatcher.Stop()
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("stop returned while a delivery was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("stop did not return after deliveries finished")
	}
}
