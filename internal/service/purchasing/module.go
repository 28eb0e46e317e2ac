package purchasing

import "go.uber.org/fx"

// Module provides the purchasing service.
var Module = fx.Provide(NewService)
