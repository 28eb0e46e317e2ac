package workshop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/service/crud"
	"github.com/gearbox-hq/gearbox/internal/storage"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Service manages service types, service orders and their labor lines.
type Service struct {
	Types *crud.Service[entity.ServiceType, *entity.ServiceType]

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

// NewService wires a new workshop Service.
func NewService(p Params) *Service {
	return &Service{
		Types: crud.New(crud.Config[entity.ServiceType, *entity.ServiceType]{
			Resource: "service type",
			Conns:    p.Conns,
			Logger:   p.Logger,
			Sort:     storage.OrderBy("type_name ASC"),
		}),
		conns:  p.Conns,
		logger: p.Logger,
		now:    time.Now,
	}
}

// LaborPatch carries the allow-listed mutable fields of a labor line.
// Rate snapshots taken at creation never change afterwards.
type LaborPatch struct {
	Description *string
	Status      *string
	Hours       *float64
}

// ListOrders returns service orders, most recently opened first.
func (s *Service) ListOrders(ctx context.Context, status string) ([]entity.ServiceOrder, error) {
	repo := storage.RepositoryFor[entity.ServiceOrder](storage.NewUnitOfWork(s.conns))

	fns := []storage.QueryFn{storage.OrderBy("opened_at DESC")}
	if status != "" {
		fns = append([]storage.QueryFn{storage.WhereEq("status", status)}, fns...)
	}

	orders, err := repo.Find(ctx, fns...)
	if err != nil {
		return nil, s.internal("list service orders", err)
	}
	return orders, nil
}

// GetOrder fetches a service order by id.
func (s *Service) GetOrder(ctx context.Context, id int64) (*entity.ServiceOrder, error) {
	order, err := storage.RepositoryFor[entity.ServiceOrder](storage.NewUnitOfWork(s.conns)).GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("service order not found")
	}
	if err != nil {
		return nil, s.internal("load service order", err)
	}
	return order, nil
}

// CreateOrder opens a service order with a generated order number.
func (s *Service) CreateOrder(ctx context.Context, order *entity.ServiceOrder) error {
	if order == nil {
		return errorbank.BadRequest("service order payload is required")
	}
	if order.CustomerName == "" {
		return errorbank.BadRequest("customerName is required")
	}
	if order.VehicleModelID <= 0 {
		return errorbank.BadRequest("vehicleModelId is required")
	}

	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.ServiceOrder](uow)
	models := storage.RepositoryFor[entity.VehicleModel](uow)

	if _, err := models.GetByID(ctx, order.VehicleModelID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorbank.BadRequest(fmt.Sprintf("vehicle model %d does not exist", order.VehicleModelID))
		}
		return s.internal("load vehicle model", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return s.internal("count service orders", err)
	}

	now := s.now().UTC()
	order.OrderNumber = fmt.Sprintf("SO-%s-%04d", now.Format("20060102"), count+1)
	if order.Status == "" {
		order.Status = entity.ServiceStatusOpen
	}
	if order.OpenedAt.IsZero() {
		order.OpenedAt = now
	}
	order.StampCreated(now)

	repo.Add(order)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("create service order", err)
	}
	return nil
}

// ListLabors returns labor lines, optionally scoped to one service order.
func (s *Service) ListLabors(ctx context.Context, serviceOrderID int64) ([]entity.ServiceOrderLabor, error) {
	repo := storage.RepositoryFor[entity.ServiceOrderLabor](storage.NewUnitOfWork(s.conns))

	fns := []storage.QueryFn{storage.OrderBy("id ASC")}
	if serviceOrderID > 0 {
		fns = append([]storage.QueryFn{storage.WhereEq("service_order_id", serviceOrderID)}, fns...)
	}

	labors, err := repo.Find(ctx, fns...)
	if err != nil {
		return nil, s.internal("list service order labors", err)
	}
	return labors, nil
}

// GetLabor fetches a labor line by id.
func (s *Service) GetLabor(ctx context.Context, id int64) (*entity.ServiceOrderLabor, error) {
	labor, err := storage.RepositoryFor[entity.ServiceOrderLabor](storage.NewUnitOfWork(s.conns)).GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("service order labor not found")
	}
	if err != nil {
		return nil, s.internal("load service order labor", err)
	}
	return labor, nil
}

// CreateLabor adds a labor line to a service order. Description and both
// rates are snapshotted from the catalog item so later catalog edits leave
// existing lines untouched.
func (s *Service) CreateLabor(ctx context.Context, labor *entity.ServiceOrderLabor) error {
	if labor == nil {
		return errorbank.BadRequest("service order labor payload is required")
	}
	if labor.ServiceOrderID <= 0 {
		return errorbank.BadRequest("serviceOrderId is required")
	}
	if labor.LaborItemID <= 0 {
		return errorbank.BadRequest("laborItemId is required")
	}
	if labor.Hours < 0 {
		return errorbank.BadRequest("hours must not be negative")
	}

	uow := storage.NewUnitOfWork(s.conns)
	labors := storage.RepositoryFor[entity.ServiceOrderLabor](uow)
	orders := storage.RepositoryFor[entity.ServiceOrder](uow)
	catalog := storage.RepositoryFor[entity.LaborItem](uow)

	if _, err := orders.GetByID(ctx, labor.ServiceOrderID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorbank.BadRequest(fmt.Sprintf("service order %d does not exist", labor.ServiceOrderID))
		}
		return s.internal("load service order", err)
	}

	item, err := catalog.GetByID(ctx, labor.LaborItemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorbank.BadRequest(fmt.Sprintf("labor item %d does not exist", labor.LaborItemID))
		}
		return s.internal("load labor item", err)
	}

	if labor.Description == "" {
		labor.Description = item.ItemName
	}
	labor.HourlyRate = item.StandardRate
	labor.CostRate = item.CostRate
	if labor.Hours == 0 {
		labor.Hours = item.StandardHours
	}
	if labor.Status == "" {
		labor.Status = entity.LaborStatusPending
	}
	labor.TotalCost = labor.Hours * labor.HourlyRate
	labor.StampCreated(s.now().UTC())

	labors.Add(labor)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("create service order labor", err)
	}
	return nil
}

// UpdateLabor applies the allow-listed fields and recomputes the line total.
func (s *Service) UpdateLabor(ctx context.Context, id int64, patch LaborPatch) (*entity.ServiceOrderLabor, error) {
	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.ServiceOrderLabor](uow)

	labor, err := repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("service order labor not found")
	}
	if err != nil {
		return nil, s.internal("load service order labor", err)
	}

	if patch.Description != nil {
		labor.Description = *patch.Description
	}
	if patch.Status != nil {
		labor.Status = *patch.Status
	}
	if patch.Hours != nil {
		if *patch.Hours < 0 {
			return nil, errorbank.BadRequest("hours must not be negative")
		}
		labor.Hours = *patch.Hours
	}
	labor.TotalCost = labor.Hours * labor.HourlyRate
	labor.StampUpdated(s.now().UTC())

	repo.Update(labor)
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, s.internal("update service order labor", err)
	}
	return labor, nil
}

// DeleteLabor removes a labor line.
func (s *Service) DeleteLabor(ctx context.Context, id int64) error {
	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.ServiceOrderLabor](uow)

	labor, err := repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errorbank.NotFound("service order labor not found")
	}
	if err != nil {
		return s.internal("load service order labor", err)
	}

	repo.Delete(labor)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("delete service order labor", err)
	}
	return nil
}

func (s *Service) internal(action string, err error) *errorbank.AppError {
	if s.logger != nil {
		s.logger.Error("workshop operation failed", zap.String("action", action), zap.Error(err))
	}
	return errorbank.Internal("failed to "+action, errorbank.WithCause(err))
}
