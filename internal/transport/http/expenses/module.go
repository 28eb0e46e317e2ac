package expenses

import (
	"go.uber.org/fx"

	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	expensessvc "github.com/gearbox-hq/gearbox/internal/service/expenses"
)

// Module wires the operating expenses HTTP endpoints.
var Module = fx.Invoke(func(api *httpserver.API, svc *expensessvc.Service) {
	Register(api, svc)
})
