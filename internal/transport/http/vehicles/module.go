package vehicles

import (
	"go.uber.org/fx"

	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	vehiclesvc "github.com/gearbox-hq/gearbox/internal/service/vehicles"
)

// Module wires the vehicle catalog HTTP endpoints.
var Module = fx.Invoke(func(api *httpserver.API, svc *vehiclesvc.Service) {
	Register(api, svc)
})
