package expenses

import "go.uber.org/fx"

// Module provides the expenses service.
var Module = fx.Provide(NewService)
