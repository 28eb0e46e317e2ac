package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/config"
	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/messaging"
	"github.com/gearbox-hq/gearbox/internal/storage"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/gearbox-hq/gearbox/service/inventory")

// Service manages part inventory batches and their consumption events.
type Service struct {
	conns     *database.Connections
	logger    *zap.Logger
	publisher messaging.Client
	enabled   bool
	threshold int
	now       func() time.Time
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Conns     *database.Connections
	Config    config.Config
	Logger    *zap.Logger
	Publisher messaging.Client
}

// NewService wires a new inventory Service.
func NewService(p Params) *Service {
	return &Service{
		conns:     p.Conns,
		logger:    p.Logger,
		publisher: p.Publisher,
		enabled:   p.Config.Messaging.Enabled,
		threshold: p.Config.Inventory.LowStockThreshold,
		now:       time.Now,
	}
}

// BatchPatch carries the allow-listed mutable fields of a batch. Quantities
// are owned by the usage flow and cannot be edited directly.
type BatchPatch struct {
	SupplierName *string
	UnitCost     *float64
	ExpiryDate   *time.Time
}

// UsagePatch carries the allow-listed mutable fields of a usage.
type UsagePatch struct {
	QuantityUsed *int
	UsedAt       *time.Time
}

// ListBatches returns batches sorted by batch number, optionally scoped to a part.
func (s *Service) ListBatches(ctx context.Context, partID int64) ([]entity.PartInventoryBatch, error) {
	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.PartInventoryBatch](uow)

	fns := []storage.QueryFn{storage.OrderBy("batch_number ASC")}
	if partID > 0 {
		fns = append([]storage.QueryFn{storage.WhereEq("part_id", partID)}, fns...)
	}

	batches, err := repo.Find(ctx, fns...)
	if err != nil {
		return nil, s.internal("list batches", err)
	}
	return batches, nil
}

// GetBatch fetches a batch by id.
func (s *Service) GetBatch(ctx context.Context, id int64) (*entity.PartInventoryBatch, error) {
	batch, err := storage.RepositoryFor[entity.PartInventoryBatch](storage.NewUnitOfWork(s.conns)).GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("inventory batch not found")
	}
	if err != nil {
		return nil, s.internal("load batch", err)
	}
	return batch, nil
}

// ReceiveBatch registers a received lot. The batch number is derived from
// the current row count; two concurrent receipts may observe the same count
// and collide. Kept as-is deliberately, see the sequence note in DESIGN.md.
func (s *Service) ReceiveBatch(ctx context.Context, batch *entity.PartInventoryBatch) error {
	if batch == nil {
		return errorbank.BadRequest("batch payload is required")
	}
	if batch.PartID <= 0 {
		return errorbank.BadRequest("partId is required")
	}
	if batch.QuantityReceived <= 0 {
		return errorbank.BadRequest("quantityReceived must be positive")
	}

	ctx, span := serviceTracer.Start(ctx, "InventoryService.ReceiveBatch",
		trace.WithAttributes(attribute.Int64("part.id", batch.PartID)))
	defer span.End()

	uow := storage.NewUnitOfWork(s.conns)
	batches := storage.RepositoryFor[entity.PartInventoryBatch](uow)
	parts := storage.RepositoryFor[entity.Part](uow)

	if _, err := parts.GetByID(ctx, batch.PartID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorbank.BadRequest(fmt.Sprintf("part %d does not exist", batch.PartID))
		}
		return s.internal("load part", err)
	}

	count, err := batches.Count(ctx)
	if err != nil {
		return s.internal("count batches", err)
	}

	now := s.now().UTC()
	batch.BatchNumber = FormatBatchNumber(now, count+1)
	batch.QuantityRemaining = batch.QuantityReceived
	if batch.ReceivedAt.IsZero() {
		batch.ReceivedAt = now
	}
	batch.StampCreated(now)

	batches.Add(batch)
	if err := uow.SaveChanges(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
		return s.internal("create batch", err)
	}

	s.publish(ctx, BatchEvent{
		EventID:           uuid.NewString(),
		Type:              EventBatchReceived,
		BatchID:           batch.ID,
		BatchNumber:       batch.BatchNumber,
		PartID:            batch.PartID,
		Quantity:          batch.QuantityReceived,
		QuantityRemaining: batch.QuantityRemaining,
		LowStock:          batch.QuantityRemaining <= s.threshold,
		OccurredAt:        now,
	})
	return nil
}

// UpdateBatch applies the allow-listed fields onto an existing batch.
func (s *Service) UpdateBatch(ctx context.Context, id int64, patch BatchPatch) (*entity.PartInventoryBatch, error) {
	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.PartInventoryBatch](uow)

	batch, err := repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("inventory batch not found")
	}
	if err != nil {
		return nil, s.internal("load batch", err)
	}

	if patch.SupplierName != nil {
		batch.SupplierName = *patch.SupplierName
	}
	if patch.UnitCost != nil {
		batch.UnitCost = *patch.UnitCost
	}
	if patch.ExpiryDate != nil {
		batch.ExpiryDate = patch.ExpiryDate
	}
	batch.StampUpdated(s.now().UTC())

	repo.Update(batch)
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, s.internal("update batch", err)
	}
	return batch, nil
}

// DeleteBatch removes a batch.
func (s *Service) DeleteBatch(ctx context.Context, id int64) error {
	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.PartInventoryBatch](uow)

	batch, err := repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errorbank.NotFound("inventory batch not found")
	}
	if err != nil {
		return s.internal("load batch", err)
	}

	repo.Delete(batch)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("delete batch", err)
	}
	return nil
}

// ListUsages returns usage events sorted by time, optionally scoped to a
// batch or a service order.
func (s *Service) ListUsages(ctx context.Context, batchID, serviceOrderID int64) ([]entity.PartBatchUsage, error) {
	uow := storage.NewUnitOfWork(s.conns)
	repo := storage.RepositoryFor[entity.PartBatchUsage](uow)

	fns := []storage.QueryFn{storage.OrderBy("used_at ASC")}
	if batchID > 0 {
		fns = append([]storage.QueryFn{storage.WhereEq("part_inventory_batch_id", batchID)}, fns...)
	}
	if serviceOrderID > 0 {
		fns = append([]storage.QueryFn{storage.WhereEq("service_order_id", serviceOrderID)}, fns...)
	}

	usages, err := repo.Find(ctx, fns...)
	if err != nil {
		return nil, s.internal("list usages", err)
	}
	return usages, nil
}

// GetUsage fetches a usage event by id.
func (s *Service) GetUsage(ctx context.Context, id int64) (*entity.PartBatchUsage, error) {
	usage, err := storage.RepositoryFor[entity.PartBatchUsage](storage.NewUnitOfWork(s.conns)).GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("batch usage not found")
	}
	if err != nil {
		return nil, s.internal("load usage", err)
	}
	return usage, nil
}

// RecordUsage consumes stock from a batch on behalf of a service order. The
// usage row and the batch decrement commit in the same transaction, and the
// batch's unit cost plus the part's sale price are snapshotted onto the
// usage so later edits do not rewrite history.
func (s *Service) RecordUsage(ctx context.Context, batchID, serviceOrderID int64, quantity int, usedAt time.Time) (*entity.PartBatchUsage, error) {
	if batchID <= 0 {
		return nil, errorbank.BadRequest("partInventoryBatchId is required")
	}
	if serviceOrderID <= 0 {
		return nil, errorbank.BadRequest("serviceOrderId is required")
	}
	if quantity <= 0 {
		return nil, errorbank.BadRequest("quantityUsed must be positive")
	}

	ctx, span := serviceTracer.Start(ctx, "InventoryService.RecordUsage",
		trace.WithAttributes(
			attribute.Int64("batch.id", batchID),
			attribute.Int("quantity", quantity),
		))
	defer span.End()

	uow := storage.NewUnitOfWork(s.conns)
	batches := storage.RepositoryFor[entity.PartInventoryBatch](uow)
	usages := storage.RepositoryFor[entity.PartBatchUsage](uow)
	parts := storage.RepositoryFor[entity.Part](uow)

	batch, err := batches.GetByID(ctx, batchID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.BadRequest(fmt.Sprintf("inventory batch %d does not exist", batchID))
	}
	if err != nil {
		return nil, s.internal("load batch", err)
	}

	if quantity > batch.QuantityRemaining {
		return nil, errorbank.Unprocessable(fmt.Sprintf(
			"batch %s has %d remaining, cannot use %d", batch.BatchNumber, batch.QuantityRemaining, quantity))
	}

	part, err := parts.GetByID(ctx, batch.PartID)
	if err != nil {
		return nil, s.internal("load part", err)
	}

	now := s.now().UTC()
	if usedAt.IsZero() {
		usedAt = now
	}

	usage := &entity.PartBatchUsage{
		PartInventoryBatchID: batch.ID,
		ServiceOrderID:       serviceOrderID,
		QuantityUsed:         quantity,
		UnitCost:             batch.UnitCost,
		UnitPrice:            part.UnitPrice,
		UsedAt:               usedAt,
	}
	usage.StampCreated(now)

	batch.QuantityRemaining -= quantity
	batch.StampUpdated(now)

	usages.Add(usage)
	batches.Update(batch)
	if err := uow.SaveChanges(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
		return nil, s.internal("record usage", err)
	}

	s.publish(ctx, BatchEvent{
		EventID:           uuid.NewString(),
		Type:              EventBatchConsumed,
		BatchID:           batch.ID,
		BatchNumber:       batch.BatchNumber,
		PartID:            batch.PartID,
		Quantity:          quantity,
		QuantityRemaining: batch.QuantityRemaining,
		LowStock:          batch.QuantityRemaining <= s.threshold,
		OccurredAt:        now,
	})
	return usage, nil
}

// UpdateUsage adjusts an existing usage. A quantity change moves the delta
// against the owning batch's remaining stock in the same transaction;
// parent references are never reassigned from a request body.
func (s *Service) UpdateUsage(ctx context.Context, id int64, patch UsagePatch) (*entity.PartBatchUsage, error) {
	uow := storage.NewUnitOfWork(s.conns)
	usages := storage.RepositoryFor[entity.PartBatchUsage](uow)
	batches := storage.RepositoryFor[entity.PartInventoryBatch](uow)

	usage, err := usages.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errorbank.NotFound("batch usage not found")
	}
	if err != nil {
		return nil, s.internal("load usage", err)
	}

	now := s.now().UTC()

	if patch.QuantityUsed != nil {
		newQuantity := *patch.QuantityUsed
		if newQuantity <= 0 {
			return nil, errorbank.BadRequest("quantityUsed must be positive")
		}
		delta := newQuantity - usage.QuantityUsed
		if delta != 0 {
			batch, err := batches.GetByID(ctx, usage.PartInventoryBatchID)
			if err != nil {
				return nil, s.internal("load batch", err)
			}
			if delta > batch.QuantityRemaining {
				return nil, errorbank.Unprocessable(fmt.Sprintf(
					"batch %s has %d remaining, cannot use %d more", batch.BatchNumber, batch.QuantityRemaining, delta))
			}
			batch.QuantityRemaining -= delta
			batch.StampUpdated(now)
			batches.Update(batch)
		}
		usage.QuantityUsed = newQuantity
	}
	if patch.UsedAt != nil {
		usage.UsedAt = *patch.UsedAt
	}
	usage.StampUpdated(now)

	usages.Update(usage)
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, s.internal("update usage", err)
	}
	return usage, nil
}

// DeleteUsage removes a usage and returns its quantity to the batch.
func (s *Service) DeleteUsage(ctx context.Context, id int64) error {
	uow := storage.NewUnitOfWork(s.conns)
	usages := storage.RepositoryFor[entity.PartBatchUsage](uow)
	batches := storage.RepositoryFor[entity.PartInventoryBatch](uow)

	usage, err := usages.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errorbank.NotFound("batch usage not found")
	}
	if err != nil {
		return s.internal("load usage", err)
	}

	batch, err := batches.GetByID(ctx, usage.PartInventoryBatchID)
	if err == nil {
		batch.QuantityRemaining += usage.QuantityUsed
		batch.StampUpdated(s.now().UTC())
		batches.Update(batch)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return s.internal("load batch", err)
	}

	usages.Delete(usage)
	if err := uow.SaveChanges(ctx); err != nil {
		return s.internal("delete usage", err)
	}
	return nil
}

func (s *Service) internal(action string, err error) *errorbank.AppError {
	if s.logger != nil {
		s.logger.Error("inventory operation failed", zap.String("action", action), zap.Error(err))
	}
	return errorbank.Internal("failed to "+action, errorbank.WithCause(err))
}

func (s *Service) publish(ctx context.Context, event BatchEvent) {
	if !s.enabled || s.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal inventory event", zap.Error(err))
		}
		return
	}
	key := []byte(fmt.Sprintf("batch-%d", event.BatchID))
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish inventory event", zap.String("type", event.Type), zap.Error(err))
		}
	}
}
