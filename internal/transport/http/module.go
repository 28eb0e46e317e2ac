package http

import (
	"go.uber.org/fx"

	expensestransport "github.com/gearbox-hq/gearbox/internal/transport/http/expenses"
	inventorytransport "github.com/gearbox-hq/gearbox/internal/transport/http/inventory"
	labortransport "github.com/gearbox-hq/gearbox/internal/transport/http/labor"
	partstransport "github.com/gearbox-hq/gearbox/internal/transport/http/parts"
	positionstransport "github.com/gearbox-hq/gearbox/internal/transport/http/positions"
	purchasingtransport "github.com/gearbox-hq/gearbox/internal/transport/http/purchasing"
	reportstransport "github.com/gearbox-hq/gearbox/internal/transport/http/reports"
	vehiclestransport "github.com/gearbox-hq/gearbox/internal/transport/http/vehicles"
	workshoptransport "github.com/gearbox-hq/gearbox/internal/transport/http/workshop"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	labortransport.Module,
	vehiclestransport.Module,
	partstransport.Module,
	inventorytransport.Module,
	purchasingtransport.Module,
	workshoptransport.Module,
	positionstransport.Module,
	expensestransport.Module,
	reportstransport.Module,
)
