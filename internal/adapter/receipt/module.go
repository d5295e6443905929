package receipt

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ajdiallo/chopnow/internal/config"
)

// Module exposes receipt notifier implementation to fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (Notifier, error) {
	return NewHTTPNotifier(p.Config.NotifierAddress, p.Logger)
}
