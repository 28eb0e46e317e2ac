package inventory

import (
	"go.uber.org/fx"

	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
)

// Module wires the inventory HTTP endpoints.
var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Invoke(func(api *httpserver.API, h *Handler) {
		Register(api, h)
	}),
)
