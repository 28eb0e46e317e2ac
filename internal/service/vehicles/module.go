package vehicles

import "go.uber.org/fx"

// Module provides the vehicles service to Fx.
var Module = fx.Provide(NewService)
