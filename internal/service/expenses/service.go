package expenses

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/service/crud"
	"github.com/gearbox-hq/gearbox/internal/storage"
)

// Service manages operating expenses.
type Service struct {
	Expenses *crud.Service[entity.OperatingExpense, *entity.OperatingExpense]
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Conns  *database.Connections
	Logger *zap.Logger
}

// NewService wires a new expenses Service.
func NewService(p Params) *Service {
	return &Service{
		Expenses: crud.New(crud.Config[entity.OperatingExpense, *entity.OperatingExpense]{
			Resource: "operating expense",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("incurred_at DESC"),
		}),
	}
}
