package parts

import (
	"go.uber.org/fx"

	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	partsvc "github.com/gearbox-hq/gearbox/internal/service/parts"
)

// Module wires the part catalog HTTP endpoints.
var Module = fx.Invoke(func(api *httpserver.API, svc *partsvc.Service) {
	Register(api, svc)
})
