package labor

import (
	"go.uber.org/fx"

	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	laborsvc "github.com/gearbox-hq/gearbox/internal/service/labor"
)

// Module wires the labor HTTP endpoints.
var Module = fx.Invoke(func(api *httpserver.API, svc *laborsvc.Service) {
	Register(api, svc)
})
