package reports

import "go.uber.org/fx"

// Module provides the reports service.
var Module = fx.Provide(NewService)
