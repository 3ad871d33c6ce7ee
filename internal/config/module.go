package config

import "go.uber.org/fx"

// Module wires configuration loading for dependency injection.
var Module = fx.Provide(Load)
