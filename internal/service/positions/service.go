package positions

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/service/crud"
	"github.com/gearbox-hq/gearbox/internal/storage"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Service manages staff positions. Positions are soft-deleted: removal
// flips is_deleted and the row stays in the table for historical records.
type Service struct {
	Positions *crud.Service[entity.Position, *entity.Position]

	conns  *database.Connections
	logger *zap.Logger
	now    func() time.Time
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Conns  *database.Connections
	Logger *zap.Logger
}

// NewService wires a new positions Service.
func NewService(p Params) *Service {
	return &Service{
		Positions: crud.New(crud.Config[entity.Position, *entity.Position]{
			Resource: "position",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("position_name ASC"),
			Scope: func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("is_deleted = ?", false).Where("is_active = ?", true)
			},
		}),
		conns:  p.Conns,
		logger: p.Logger,
		now:    time.Now,
	}
}

// Delete marks a position deleted without removing the row.
func (s *Service) Delete(ctx context.Context, id int64) error {
	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.Position](uow)

	pos, err := repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errorbank.NotFound("position not found")
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Error("positions operation failed", zap.String("action", "load position"), zap.Error(err))
		}
		return errorbank.Internal("failed to load position", errorbank.WithCause(err))
	}
	if pos.IsDeleted {
		return errorbank.NotFound("position not found")
	}

	pos.IsDeleted = true
	pos.IsActive = false
	pos.StampUpdated(s.now().UTC())

	repo.Update(pos)
	if err := uow.SaveChanges(ctx); err != nil {
		if s.logger != nil {
			s.logger.Error("positions operation failed", zap.String("action", "delete position"), zap.Error(err))
		}
		return errorbank.Internal("failed to delete position", errorbank.WithCause(err))
	}
	return nil
}
