package labor

import "go.uber.org/fx"

// Module provides the labor service to Fx.
var Module = fx.Provide(NewService)
