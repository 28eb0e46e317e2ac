package workshop

import "go.uber.org/fx"

// Module provides the workshop service.
var Module = fx.Provide(NewService)
