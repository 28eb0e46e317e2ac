package app

import (
	"go.uber.org/fx"

	"github.com/gearbox-hq/gearbox/internal/cache"
	"github.com/gearbox-hq/gearbox/internal/config"
	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/logger"
	"github.com/gearbox-hq/gearbox/internal/messaging"
	"github.com/gearbox-hq/gearbox/internal/observability"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	serviceexpenses "github.com/gearbox-hq/gearbox/internal/service/expenses"
	serviceinventory "github.com/gearbox-hq/gearbox/internal/service/inventory"
	servicelabor "github.com/gearbox-hq/gearbox/internal/service/labor"
	serviceparts "github.com/gearbox-hq/gearbox/internal/service/parts"
	servicepositions "github.com/gearbox-hq/gearbox/internal/service/positions"
	servicepurchasing "github.com/gearbox-hq/gearbox/internal/service/purchasing"
	servicereports "github.com/gearbox-hq/gearbox/internal/service/reports"
	servicevehicles "github.com/gearbox-hq/gearbox/internal/service/vehicles"
	serviceworkshop "github.com/gearbox-hq/gearbox/internal/service/workshop"
	transporthttp "github.com/gearbox-hq/gearbox/internal/transport/http"
	"github.com/gearbox-hq/gearbox/internal/worker"
	workerinventory "github.com/gearbox-hq/gearbox/internal/worker/inventory"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	servicelabor.Module,
	servicevehicles.Module,
	serviceparts.Module,
	serviceinventory.Module,
	servicepurchasing.Module,
	serviceworkshop.Module,
	servicepositions.Module,
	serviceexpenses.Module,
	servicereports.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerinventory.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
