package labor

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/service/crud"
	"github.com/gearbox-hq/gearbox/internal/storage"
)

// Service manages labor categories and the billable items inside them.
type Service struct {
	Categories *crud.Service[entity.LaborCategory, *entity.LaborCategory]
	Items      *crud.Service[entity.LaborItem, *entity.LaborItem]
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Conns  *database.Connections
	Logger *zap.Logger
}

// NewService wires the labor catalog service.
func NewService(p Params) *Service {
	return &Service{
		Categories: crud.New(crud.Config[entity.LaborCategory, *entity.LaborCategory]{
			Resource: "labor category",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("category_name ASC"),
		}),
		Items: crud.New(crud.Config[entity.LaborItem, *entity.LaborItem]{
			Resource: "labor item",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("item_name ASC"),
		}),
	}
}
