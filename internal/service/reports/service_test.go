package reports

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

	"github.com/gearbox-hq/gearbox/internal/cache"
	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

type memoryStore struct {
	data map[string][]byte
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func testService(t *testing.T) (*Service, *bun.DB) {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.ResetModel(context.Background(),
		(*entity.ServiceOrder)(nil),
		(*entity.ServiceOrderLabor)(nil),
		(*entity.PartBatchUsage)(nil),
		(*entity.OperatingExpense)(nil),
		(*entity.PurchaseOrder)(nil),
		(*entity.PurchaseOrderItem)(nil),
	))

	svc := &Service{
		conns:  &database.Connections{Writer: db, Reader: db},
		store:  &memoryStore{data: map[string][]byte{}},
		ttl:    time.Minute,
		logger: zap.NewNop(),
		now:    func() time.Time { return testNow },
	}
	return svc, db
}

func seedLedger(t *testing.T, db *bun.DB) {
	t.Helper()
	ctx := context.Background()
	inRange := time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	order := &entity.ServiceOrder{OrderNumber: "SO-20260810-0001", VehicleModelID: 1, CustomerName: "A. Driver", Status: entity.ServiceStatusCompleted, OpenedAt: inRange}
	_, err := db.NewInsert().Model(order).Exec(ctx)
	require.NoError(t, err)

	oldOrder := &entity.ServiceOrder{OrderNumber: "SO-20260701-0001", VehicleModelID: 1, CustomerName: "B. Driver", Status: entity.ServiceStatusOpen, OpenedAt: outOfRange}
	_, err = db.NewInsert().Model(oldOrder).Exec(ctx)
	require.NoError(t, err)

	labors := []entity.ServiceOrderLabor{
		{ServiceOrderID: order.ID, LaborItemID: 1, HourlyRate: 50, CostRate: 30, Hours: 2, TotalCost: 100, Status: entity.LaborStatusDone},
		{ServiceOrderID: order.ID, LaborItemID: 1, HourlyRate: 60, CostRate: 40, Hours: 1, TotalCost: 60, Status: entity.LaborStatusDone},
		{ServiceOrderID: oldOrder.ID, LaborItemID: 1, HourlyRate: 50, CostRate: 30, Hours: 8, TotalCost: 400, Status: entity.LaborStatusDone},
	}
	for i := range labors {
		_, err = db.NewInsert().Model(&labors[i]).Exec(ctx)
		require.NoError(t, err)
	}

	usages := []entity.PartBatchUsage{
		{PartInventoryBatchID: 1, ServiceOrderID: order.ID, QuantityUsed: 4, UnitCost: 5, UnitPrice: 8, UsedAt: inRange},
		{PartInventoryBatchID: 1, ServiceOrderID: oldOrder.ID, QuantityUsed: 10, UnitCost: 5, UnitPrice: 8, UsedAt: outOfRange},
	}
	for i := range usages {
		_, err = db.NewInsert().Model(&usages[i]).Exec(ctx)
		require.NoError(t, err)
	}

	expense := &entity.OperatingExpense{Category: "Rent", Amount: 40, IncurredAt: inRange}
	_, err = db.NewInsert().Model(expense).Exec(ctx)
	require.NoError(t, err)

	po := &entity.PurchaseOrder{OrderNumber: "PO-20260810-0001", SupplierName: "Acme", Status: entity.PurchaseStatusReceived, OrderedAt: inRange}
	_, err = db.NewInsert().Model(po).Exec(ctx)
	require.NoError(t, err)

	item := &entity.PurchaseOrderItem{PurchaseOrderID: po.ID, PartID: 1, PartName: "Oil Filter", Quantity: 5, UnitCost: 4, TotalCost: 20}
	_, err = db.NewInsert().Model(item).Exec(ctx)
	require.NoError(t, err)
}

func TestNormalizeRangeWidensToWholeDays(t *testing.T) {
	from := time.Date(2026, 8, 5, 13, 45, 0, 0, time.UTC)
	to := time.Date(2026, 8, 6, 1, 0, 0, 0, time.UTC)

	rng, err := NormalizeRange(from, to, testNow)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC), rng.From)
	require.Equal(t, time.Date(2026, 8, 6, 23, 59, 59, 999999999, time.UTC), rng.To)
}

func TestNormalizeRangeDefaults(t *testing.T) {
	rng, err := NormalizeRange(time.Time{}, time.Time{}, testNow)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), rng.From)
	require.Equal(t, time.Date(2026, 8, 20, 23, 59, 59, 999999999, time.UTC), rng.To)
}

func TestNormalizeRangeRejectsInvertedWindow(t *testing.T) {
	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := NormalizeRange(from, to, testNow)
	require.Error(t, err)
	require.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestIncomeStatementAggregates(t *testing.T) {
	svc, db := testService(t)
	seedLedger(t, db)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	stmt, err := svc.IncomeStatement(context.Background(), from, to, "")
	require.NoError(t, err)

	require.InDelta(t, 160, stmt.ServiceRevenue, 1e-9) // 100 + 60
	require.InDelta(t, 32, stmt.PartsSale, 1e-9)       // 4 * 8
	require.InDelta(t, 192, stmt.TotalRevenue, 1e-9)
	require.InDelta(t, 20, stmt.CostOfGoodsSold, 1e-9) // 4 * 5
	require.InDelta(t, 172, stmt.GrossProfit, 1e-9)
	require.InDelta(t, 100, stmt.LaborCost, 1e-9) // 2*30 + 1*40
	require.InDelta(t, 40, stmt.OperatingCost, 1e-9)
	require.InDelta(t, 20, stmt.PartsPurchase, 1e-9)
	require.InDelta(t, 160, stmt.TotalExpenses, 1e-9)
	require.InDelta(t, 12, stmt.NetProfit, 1e-9)
	require.InDelta(t, 172.0/192.0*100, stmt.GrossProfitMargin, 1e-9)
	require.InDelta(t, 12.0/192.0*100, stmt.NetProfitMargin, 1e-9)
}

func TestIncomeStatementStatusFilter(t *testing.T) {
	svc, db := testService(t)
	seedLedger(t, db)

	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	stmt, err := svc.IncomeStatement(context.Background(), from, to, entity.ServiceStatusCompleted)
	require.NoError(t, err)

	// Only the completed order's lines count, even though the open order
	// falls inside the wider window.
	require.InDelta(t, 160, stmt.ServiceRevenue, 1e-9)
	require.InDelta(t, 32, stmt.PartsSale, 1e-9)
	require.InDelta(t, 100, stmt.LaborCost, 1e-9)
}

func TestIncomeStatementZeroRevenueMargins(t *testing.T) {
	svc, _ := testService(t)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	stmt, err := svc.IncomeStatement(context.Background(), from, to, "")
	require.NoError(t, err)
	require.Zero(t, stmt.ServiceRevenue)
	require.Zero(t, stmt.PartsSale)
	require.Zero(t, stmt.TotalRevenue)
	require.Zero(t, stmt.CostOfGoodsSold)
	require.Zero(t, stmt.LaborCost)
	require.Zero(t, stmt.OperatingCost)
	require.Zero(t, stmt.PartsPurchase)
	require.Zero(t, stmt.GrossProfitMargin)
	require.Zero(t, stmt.NetProfitMargin)
}

func TestIncomeStatementServedFromCache(t *testing.T) {
	svc, db := testService(t)
	seedLedger(t, db)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	first, err := svc.IncomeStatement(ctx, from, to, "")
	require.NoError(t, err)

	// New rows after the first computation must not show up until the TTL
	// expires; the cached figures are returned as-is.
	expense := &entity.OperatingExpense{Category: "Tools", Amount: 999, IncurredAt: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)}
	_, err = db.NewInsert().Model(expense).Exec(ctx)
	require.NoError(t, err)

	second, err := svc.IncomeStatement(ctx, from, to, "")
	require.NoError(t, err)
	require.Equal(t, first.OperatingCost, second.OperatingCost)
	require.Equal(t, first.NetProfit, second.NetProfit)
}
