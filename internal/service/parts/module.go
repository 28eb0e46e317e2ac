package parts

import "go.uber.org/fx"

// Module provides the part catalog service to Fx.
var Module = fx.Provide(NewService)
