package inventory

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/config"
	"github.com/gearbox-hq/gearbox/internal/messaging"
	inventorysvc "github.com/gearbox-hq/gearbox/internal/service/inventory"
	"github.com/gearbox-hq/gearbox/internal/worker"
)

var workerTracer = otel.Tracer("github.com/gearbox-hq/gearbox/worker/inventory")

// Module registers inventory-related worker handlers.
var Module = fx.Module("worker_inventory",
	fx.Provide(
		fx.Annotate(
			NewBatchEventHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewBatchEventHandler sets up a worker handler that processes inventory
// batch events and raises low stock warnings.
func NewBatchEventHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.inventory.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event inventorysvc.BatchEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode batch event", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		logger.Info("inventory batch event processed",
			zap.String("event", event.Type),
			zap.Int64("batchId", event.BatchID),
			zap.String("batchNumber", event.BatchNumber),
			zap.Int64("partId", event.PartID),
			zap.Int("quantity", event.Quantity),
			zap.Int("remaining", event.QuantityRemaining),
		)

		if event.LowStock {
			logger.Warn("batch stock below threshold",
				zap.Int64("batchId", event.BatchID),
				zap.String("batchNumber", event.BatchNumber),
				zap.Int("remaining", event.QuantityRemaining),
			)
		}

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
