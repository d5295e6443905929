package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/ajdiallo/chopnow/internal/config"
	testhelpers "github.com/ajdiallo/chopnow/internal/test"
	"github.com/ajdiallo/chopnow/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestDispatcher() *worker.ReceiptDispatcher {
	return worker.NewReceiptDispatcher(&testhelpers.NotifierStub{}, 1, 1, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	srv := newHTTPServer(serverParams{
		Config: &config.Config{RunAddress: ":9999"},
		Router: router,
	})
	if srv.Addr != ":9999" {
		t.Fatalf("unexpected addr %q", srv.Addr)
	}
	if srv.Handler == nil {
		t.Fatal("expected router to be attached")
	}
}

func TestNewReceiptDispatcher(t *testing.T) {
	d := newReceiptDispatcher(dispatcherParams{
		Notifier: &testhelpers.NotifierStub{},
		Config:   &config.Config{ReceiptWorkers: 2, ReceiptQueueSize: 4},
		Logger:   discardLogger(),
	})
	if d == nil {
		t.Fatal("expected dispatcher")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	srv := &http.Server{Addr: "127.0.0.1:0"}
	dispatcher := newTestDispatcher()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     srv,
		Dispatcher: dispatcher,
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook, got %d", len(recorder.Hooks))
	}
	hook := recorder.Hooks[0]

	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- hook.OnStop(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("on stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not finish in time")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	srv := &http.Server{Addr: "bad addr"}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     srv,
		Dispatcher: newTestDispatcher(),
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if err := recorder.Hooks[0].OnStart(context.Background()); err != nil {
		t.Fatalf("on start: %v", err)
	}
	select {
	case <-shutdowner.Called:
	case <-time.After(2 * time.Second):
		t.Fatal("expected shutdowner to be invoked on listen failure")
	}
}

func TestShutdownerStub(t *testing.T) {
	stub := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := stub.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case <-stub.Called:
	default:
		t.Fatal("expected notification")
	}
	// Second call must not block on the full channel.
	if err := stub.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	var _ fx.Shutdowner = stub
}

func TestLifecycleRecorder(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})
	recorder.Append(fx.Hook{})
	if len(recorder.Hooks) != 2 {
		t.Fatalf("expected two hooks, got %d", len(recorder.Hooks))
	}
}
