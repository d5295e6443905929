package auth

import (
	"go.uber.org/fx"

	"github.com/ajdiallo/chopnow/internal/config"
)

// Module wires password hashing and token strategy implementations.
var Module = fx.Provide(
	func() PasswordHasher { return NewBcryptHasher(0) },
	func(cfg *config.Config) Strategy {
		return NewHMACStrategy(cfg.JWTSecret, Options{})
	},
)
