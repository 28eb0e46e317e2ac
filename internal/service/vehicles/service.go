package vehicles

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/service/crud"
	"github.com/gearbox-hq/gearbox/internal/storage"
)

// Service manages the vehicle brand/model catalog.
type Service struct {
	Brands *crud.Service[entity.VehicleBrand, *entity.VehicleBrand]
	Models *crud.Service[entity.VehicleModel, *entity.VehicleModel]
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Conns  *database.Connections
	Logger *zap.Logger
}

// NewService wires the vehicle catalog service.
func NewService(p Params) *Service {
	return &Service{
		Brands: crud.New(crud.Config[entity.VehicleBrand, *entity.VehicleBrand]{
			Resource: "vehicle brand",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("brand_name ASC"),
		}),
		Models: crud.New(crud.Config[entity.VehicleModel, *entity.VehicleModel]{
			Resource: "vehicle model",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("model_name ASC"),
		}),
	}
}
