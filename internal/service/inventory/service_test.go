package inventory

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/config"
	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/messaging"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

type capturePublisher struct {
	keys   [][]byte
	values [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, key, value []byte) error {
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return nil
}

func (p *capturePublisher) Consume(ctx context.Context, handler messaging.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (p *capturePublisher) Topic() string { return "garage.inventory.events" }

func testSetup(t *testing.T) (*Service, *capturePublisher, *entity.Part) {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.ResetModel(ctx,
		(*entity.PartGroup)(nil),
		(*entity.Part)(nil),
		(*entity.PartInventoryBatch)(nil),
		(*entity.PartBatchUsage)(nil),
	))

	group := &entity.PartGroup{GroupName: "Filters"}
	_, err = db.NewInsert().Model(group).Exec(ctx)
	require.NoError(t, err)

	part := &entity.Part{PartGroupID: group.ID, PartName: "Oil Filter", PartNumber: "OF-100", UnitPrice: 12.5}
	_, err = db.NewInsert().Model(part).Exec(ctx)
	require.NoError(t, err)

	pub := &capturePublisher{}
	cfg := config.Config{}
	cfg.Messaging.Enabled = true
	cfg.Inventory.LowStockThreshold = 5

	svc := NewService(Params{
		Conns:     &database.Connections{Writer: db, Reader: db},
		Config:    cfg,
		Logger:    zap.NewNop(),
		Publisher: pub,
	})
	return svc, pub, part
}

func TestFormatBatchNumber(t *testing.T) {
	date := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "BATCH-20260831-0007", FormatBatchNumber(date, 7))
	require.Equal(t, "BATCH-20260831-0001", FormatBatchNumber(date, 1))
	require.Equal(t, "BATCH-20260831-12345", FormatBatchNumber(date, 12345))
}

func TestReceiveBatch(t *testing.T) {
	svc, pub, part := testSetup(t)
	ctx := context.Background()

	batch := &entity.PartInventoryBatch{PartID: part.ID, QuantityReceived: 20, UnitCost: 4.2, SupplierName: "Acme"}
	require.NoError(t, svc.ReceiveBatch(ctx, batch))

	require.NotZero(t, batch.ID)
	require.Regexp(t, `^BATCH-\d{8}-0001$`, batch.BatchNumber)
	require.Equal(t, 20, batch.QuantityRemaining)
	require.False(t, batch.ReceivedAt.IsZero())
	require.Len(t, pub.values, 1)
}

func TestReceiveBatchSequenceIncrements(t *testing.T) {
	svc, _, part := testSetup(t)
	ctx := context.Background()

	first := &entity.PartInventoryBatch{PartID: part.ID, QuantityReceived: 5}
	second := &entity.PartInventoryBatch{PartID: part.ID, QuantityReceived: 5}
	require.NoError(t, svc.ReceiveBatch(ctx, first))
	require.NoError(t, svc.ReceiveBatch(ctx, second))
	require.Regexp(t, `-0001$`, first.BatchNumber)
	require.Regexp(t, `-0002$`, second.BatchNumber)
}

func TestReceiveBatchValidation(t *testing.T) {
	svc, _, part := testSetup(t)
	ctx := context.Background()

	err := svc.ReceiveBatch(ctx, &entity.PartInventoryBatch{PartID: part.ID})
	require.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())

	err = svc.ReceiveBatch(ctx, &entity.PartInventoryBatch{PartID: 9999, QuantityReceived: 1})
	require.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestRecordUsageDecrementsAndSnapshots(t *testing.T) {
	svc, pub, part := testSetup(t)
	ctx := context.Background()

	batch := &entity.PartInventoryBatch{PartID: part.ID, QuantityReceived: 10, UnitCost: 4.2}
	require.NoError(t, svc.ReceiveBatch(ctx, batch))

	usage, err := svc.RecordUsage(ctx, batch.ID, 1, 3, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 3, usage.QuantityUsed)
	require.Equal(t, 4.2, usage.UnitCost)
	require.Equal(t, 12.5, usage.UnitPrice)
	require.False(t, usage.UsedAt.IsZero())

	got, err := svc.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Equal(t, 7, got.QuantityRemaining)
	require.Len(t, pub.values, 2)
}

func TestRecordUsageInsufficientStock(t *testing.T) {
	svc, _, part := testSetup(t)
	ctx := context.Background()

	batch := &entity.PartInventoryBatch{PartID: part.ID, QuantityReceived: 2}
	require.NoError(t, svc.ReceiveBatch(ctx, batch))

	_, err := svc.RecordUsage(ctx, batch.ID, 1, 3, time.Time{})
	require.Equal(t, errorbank.KindUnprocessableEntity, errorbank.From(err).Kind())

	got, err := svc.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.QuantityRemaining)
}

func TestUpdateUsageMovesDelta(t *testing.T) {
	svc, _, part := testSetup(t)
	ctx := context.Background()

	batch := &entity.PartInventoryBatch{PartID: part.ID, QuantityReceived: 10}
	require.NoError(t, svc.ReceiveBatch(ctx, batch))

	usage, err := svc.RecordUsage(ctx, batch.ID, 1, 4, time.Time{})
	require.NoError(t, err)

	quantity := 6
	updated, err := svc.UpdateUsage(ctx, usage.ID, UsagePatch{QuantityUsed: &quantity})
	require.NoError(t, err)
	require.Equal(t, 6, updated.QuantityUsed)

	got, err := svc.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Equal(t, 4, got.QuantityRemaining)

	tooMany := 20
	_, err = svc.UpdateUsage(ctx, usage.ID, UsagePatch{QuantityUsed: &tooMany})
	require.Equal(t, errorbank.KindUnprocessableEntity, errorbank.From(err).Kind())
}

func TestDeleteUsageRestoresStock(t *testing.T) {
	svc, _, part := testSetup(t)
	ctx := context.Background()

	batch := &entity.PartInventoryBatch{PartID: part.ID, QuantityReceived: 10}
	require.NoError(t, svc.ReceiveBatch(ctx, batch))

	usage, err := svc.RecordUsage(ctx, batch.ID, 1, 4, time.Time{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUsage(ctx, usage.ID))

	got, err := svc.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Equal(t, 10, got.QuantityRemaining)

	_, err = svc.GetUsage(ctx, usage.ID)
	require.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}
