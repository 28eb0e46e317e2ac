package parts

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/service/crud"
	"github.com/gearbox-hq/gearbox/internal/storage"
)

// Service manages the part catalog: groups, vehicle-model compatibility
// links and the parts themselves. Stock levels live in the inventory
// service; this one only knows what a part is.
type Service struct {
	Groups          *crud.Service[entity.PartGroup, *entity.PartGroup]
	Compatibilities *crud.Service[entity.PartGroupCompatibility, *entity.PartGroupCompatibility]
	Parts           *crud.Service[entity.Part, *entity.Part]
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Conns  *database.Connections
	Logger *zap.Logger
}

// NewService wires the part catalog service.
func NewService(p Params) *Service {
	return &Service{
		Groups: crud.New(crud.Config[entity.PartGroup, *entity.PartGroup]{
			Resource: "part group",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("group_name ASC"),
		}),
		Compatibilities: crud.New(crud.Config[entity.PartGroupCompatibility, *entity.PartGroupCompatibility]{
			Resource: "part group compatibility",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("id ASC"),
		}),
		Parts: crud.New(crud.Config[entity.Part, *entity.Part]{
			Resource: "part",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("part_name ASC"),
		}),
	}
}
