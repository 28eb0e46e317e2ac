package crud

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/storage"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Entity constrains PT to a pointer to an auditable entity.
type Entity[T any] interface {
	*T
	entity.Auditable
}

// Config describes one resource managed by a Service.
type Config[T any, PT Entity[T]] struct {
	// Resource is the display name used in messages ("vehicle brand").
	Resource string
	Conns    *database.Connections
	Logger   *zap.Logger
	// Sort orders List results by the natural display key.
	Sort storage.QueryFn
	// Scope is applied to every List call, e.g. hiding soft-deleted rows.
	Scope storage.QueryFn
}

// Service implements the uniform list/get/create/update/delete template
// every resource follows. Each call runs on its own unit of work.
type Service[T any, PT Entity[T]] struct {
	cfg Config[T, PT]
	now func() time.Time
}

// New builds a Service for one resource.
func New[T any, PT Entity[T]](cfg Config[T, PT]) *Service[T, PT] {
	return &Service[T, PT]{cfg: cfg, now: time.Now}
}

func (s *Service[T, PT]) unitOfWork() *storage.UnitOfWork {
	return storage.NewUnitOfWork(s.cfg.Conns)
}

func (s *Service[T, PT]) internal(action string, err error) *errorbank.AppError {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Error("crud operation failed",
			zap.String("resource", s.cfg.Resource),
			zap.String("action", action),
			zap.Error(err),
		)
	}
	return errorbank.Internal("failed to "+action+" "+s.cfg.Resource, errorbank.WithCause(err))
}

// List returns rows within the default scope, shaped by any extra filters,
// ordered by the configured sort key.
func (s *Service[T, PT]) List(ctx context.Context, extra ...storage.QueryFn) ([]T, error) {
	repo := storage.RepositoryFor[T](s.unitOfWork())

	fns := make([]storage.QueryFn, 0, len(extra)+2)
	if s.cfg.Scope != nil {
		fns = append(fns, s.cfg.Scope)
	}
	fns = append(fns, extra...)
	if s.cfg.Sort != nil {
		fns = append(fns, s.cfg.Sort)
	}

	rows, err := repo.Find(ctx, fns...)
	if err != nil {
		return nil, s.internal("list", err)
	}
	return rows, nil
}

// Get fetches one row by id.
func (s *Service[T, PT]) Get(ctx context.Context, id int64) (PT, error) {
	row, err := storage.RepositoryFor[T](s.unitOfWork()).GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		var zero PT
		return zero, errorbank.NotFound(s.cfg.Resource + " not found")
	}
	if err != nil {
		var zero PT
		return zero, s.internal("load", err)
	}
	return row, nil
}

// Create stamps the creation timestamp and persists the row. The caller owns
// validation and any derived fields; the id is populated on return.
func (s *Service[T, PT]) Create(ctx context.Context, row PT) error {
	uow := s.unitOfWork()
	repo := storage.RepositoryFor[T](uow)

	row.StampCreated(s.now().UTC())
	repo.Add((*T)(row))

	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("create", err)
	}
	return nil
}

// Update loads the existing row, lets apply copy the allow-listed fields
// onto it, stamps the update timestamp and persists. Fields apply does not
// touch are preserved; the record is never replaced wholesale from a
// request body.
func (s *Service[T, PT]) Update(ctx context.Context, id int64, apply func(PT) error) (PT, error) {
	uow := s.unitOfWork()
	repo := storage.RepositoryFor[T](uow)

	row, err := repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		var zero PT
		return zero, errorbank.NotFound(s.cfg.Resource + " not found")
	}
	if err != nil {
		var zero PT
		return zero, s.internal("load", err)
	}

	existing := PT(row)
	if err := apply(existing); err != nil {
		var zero PT
		return zero, err
	}
	existing.StampUpdated(s.now().UTC())
	repo.Update(row)

	if err := uow.SaveChanges(ctx); err != nil {
		var zero PT
		return zero, s.internal("update", err)
	}
	return existing, nil
}

// Delete removes the row with the given id.
func (s *Service[T, PT]) Delete(ctx context.Context, id int64) error {
	uow := s.unitOfWork()
	repo := storage.RepositoryFor[T](uow)

	row, err := repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errorbank.NotFound(s.cfg.Resource + " not found")
	}
	if err != nil {
		return s.internal("load", err)
	}

	repo.Delete(row)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("delete", err)
	}
	return nil
}
