package positions

import "go.uber.org/fx"

// Module provides the positions service.
var Module = fx.Provide(NewService)
