package config

import "go.uber.org/fx"

// Module provides the resolved configuration to the fx graph.
var Module = fx.Provide(Load)
