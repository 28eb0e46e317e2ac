package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/storage"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Service manages purchase orders and their line items.
type Service struct {
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

// NewService wires a new purchasing Service.
func NewService(p Params) *Service {
	return &Service{conns: p.Conns, logger: p.Logger, now: time.Now}
}

// ItemPatch carries the allow-listed mutable fields of a purchase order
// item. The part reference and its name snapshot are fixed at creation.
type ItemPatch struct {
	Quantity *int
	UnitCost *float64
}

// ListOrders returns purchase orders, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]entity.PurchaseOrder, error) {
	repo := storage.RepositoryFor[entity.PurchaseOrder](storage.NewUnitOfWork(s.conns))
	orders, err := repo.Find(ctx, storage.OrderBy("ordered_at DESC"))
	if err != nil {
		return nil, s.internal("list purchase orders", err)
	}
	return orders, nil
}

// GetOrder fetches a purchase order by id.
func (s *Service) GetOrder(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	order, err := storage.RepositoryFor[entity.PurchaseOrder](storage.NewUnitOfWork(s.conns)).GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("purchase order not found")
	}
	if err != nil {
		return nil, s.internal("load purchase order", err)
	}
	return order, nil
}

// CreateOrder opens a purchase order with a generated order number.
func (s *Service) CreateOrder(ctx context.Context, order *entity.PurchaseOrder) error {
	if order == nil {
		return errorbank.BadRequest("purchase order payload is required")
	}
	if order.SupplierName == "" {
		return errorbank.BadRequest("supplierName is required")
	}

	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.PurchaseOrder](uow)

	count, err := repo.Count(ctx)
	if err != nil {
		return s.internal("count purchase orders", err)
	}

	now := s.now().UTC()
	order.OrderNumber = fmt.Sprintf("PO-%s-%04d", now.Format("20060102"), count+1)
	if order.Status == "" {
		order.Status = entity.PurchaseStatusDraft
	}
	if order.OrderedAt.IsZero() {
		order.OrderedAt = now
	}
	order.StampCreated(now)

	repo.Add(order)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("create purchase order", err)
	}
	return nil
}

// ListItems returns line items, optionally scoped to one purchase order.
func (s *Service) ListItems(ctx context.Context, purchaseOrderID int64) ([]entity.PurchaseOrderItem, error) {
	repo := storage.RepositoryFor[entity.PurchaseOrderItem](storage.NewUnitOfWork(s.conns))

	fns := []storage.QueryFn{storage.OrderBy("part_name ASC")}
	if purchaseOrderID > 0 {
		fns = append([]storage.QueryFn{storage.WhereEq("purchase_order_id", purchaseOrderID)}, fns...)
	}

	items, err := repo.Find(ctx, fns...)
	if err != nil {
		return nil, s.internal("list purchase order items", err)
	}
	return items, nil
}

// GetItem fetches a line item by id.
func (s *Service) GetItem(ctx context.Context, id int64) (*entity.PurchaseOrderItem, error) {
	item, err := storage.RepositoryFor[entity.PurchaseOrderItem](storage.NewUnitOfWork(s.conns)).GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("purchase order item not found")
	}
	if err != nil {
		return nil, s.internal("load purchase order item", err)
	}
	return item, nil
}

// CreateItem adds a line to an order. The part's current name is copied onto
// the line as a snapshot; renaming the part later must not rewrite history.
func (s *Service) CreateItem(ctx context.Context, item *entity.PurchaseOrderItem) error {
	if item == nil {
		return errorbank.BadRequest("purchase order item payload is required")
	}
	if item.PurchaseOrderID <= 0 {
		return errorbank.BadRequest("purchaseOrderId is required")
	}
	if item.PartID <= 0 {
		return errorbank.BadRequest("partId is required")
	}
	if item.Quantity <= 0 {
		return errorbank.BadRequest("quantity must be positive")
	}

	uow := storage.NewUnitOfWork(s.conns)
	items := storage.RepositoryFor[entity.PurchaseOrderItem](uow)
	orders := storage.RepositoryFor[entity.PurchaseOrder](uow)
	parts := storage.RepositoryFor[entity.Part](uow)

	if _, err := orders.GetByID(ctx, item.PurchaseOrderID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorbank.BadRequest(fmt.Sprintf("purchase order %d does not exist", item.PurchaseOrderID))
		}
		return s.internal("load purchase order", err)
	}

	part, err := parts.GetByID(ctx, item.PartID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorbank.BadRequest(fmt.Sprintf("part %d does not exist", item.PartID))
		}
		return s.internal("load part", err)
	}

	item.PartName = part.PartName
	item.TotalCost = float64(item.Quantity) * item.UnitCost
	item.StampCreated(s.now().UTC())

	items.Add(item)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("create purchase order item", err)
	}
	return nil
}

// UpdateItem applies the allow-listed fields and recomputes the line total.
func (s *Service) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (*entity.PurchaseOrderItem, error) {
	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.PurchaseOrderItem](uow)

	item, err := repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("purchase order item not found")
	}
	if err != nil {
		return nil, s.internal("load purchase order item", err)
	}

	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return nil, errorbank.BadRequest("quantity must be positive")
		}
		item.Quantity = *patch.Quantity
	}
	if patch.UnitCost != nil {
		item.UnitCost = *patch.UnitCost
	}
	item.TotalCost = float64(item.Quantity) * item.UnitCost
	item.StampUpdated(s.now().UTC())

	repo.Update(item)
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, s.internal("update purchase order item", err)
	}
	return item, nil
}

// DeleteItem removes a line item.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.PurchaseOrderItem](uow)

	item, err := repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errorbank.NotFound("purchase order item not found")
	}
	if err != nil {
		return s.internal("load purchase order item", err)
	}

	repo.Delete(item)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("delete purchase order item", err)
	}
	return nil
}

func (s *Service) internal(action string, err error) *errorbank.AppError {
	if s.logger != nil {
		s.logger.Error("purchasing operation failed", zap.String("action", action), zap.Error(err))
	}
	return errorbank.Internal("failed to "+action, errorbank.WithCause(err))
}
