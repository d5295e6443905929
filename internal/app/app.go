package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/ajdiallo/chopnow/internal/adapter/receipt"
	"github.com/ajdiallo/chopnow/internal/config"
	"github.com/ajdiallo/chopnow/internal/usecase"
	"github.com/ajdiallo/chopnow/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewOrderingFacade,
		newHTTPServer,
		newReceiptDispatcher,
		func(d *worker.ReceiptDispatcher) usecase.ReceiptSink { return d },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Notifier receipt.Notifier
	Config   *config.Config
	Logger   *slog.Logger
}

func newReceiptDispatcher(p dispatcherParams) *worker.ReceiptDispatcher {
	return worker.NewReceiptDispatcher(
		p.Notifier,
		p.Config.ReceiptWorkers,
		p.Config.ReceiptQueueSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.ReceiptDispatcher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting chopnow", slog.String("addr", p.Server.Addr))
			// The start context is scoped to the hook; workers outlive it.
			p.Dispatcher.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			// Drain after the server stops accepting work so receipts for
			// settlements committed during shutdown still go out.
			p.Dispatcher.Stop()
			p.Logger.Info("chopnow stopped")
			return nil
		},
	})
}
