package di

import (
	"go.uber.org/fx"

	"github.com/ajdiallo/chopnow/internal/adapter/gateway"
	"github.com/ajdiallo/chopnow/internal/adapter/receipt"
	"github.com/ajdiallo/chopnow/internal/app"
	"github.com/ajdiallo/chopnow/internal/config"
	"github.com/ajdiallo/chopnow/internal/logger"
	"github.com/ajdiallo/chopnow/internal/pkg/auth"
	"github.com/ajdiallo/chopnow/internal/pkg/ratelimit"
	"github.com/ajdiallo/chopnow/internal/server/http/handlers"
	"github.com/ajdiallo/chopnow/internal/server/http/router"
	"github.com/ajdiallo/chopnow/internal/storage/postgres"
	"github.com/ajdiallo/chopnow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		ratelimit.Module,
		postgres.Module,
		gateway.Module,
		receipt.Module,
		usecase.Module,
		fx.Provide(func(f *app.OrderingFacade) handlers.OrderingFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
