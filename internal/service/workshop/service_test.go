package workshop

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

func testSetup(t *testing.T) (*Service, *bun.DB) {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.ResetModel(context.Background(),
		(*entity.VehicleBrand)(nil),
		(*entity.VehicleModel)(nil),
		(*entity.LaborCategory)(nil),
		(*entity.LaborItem)(nil),
		(*entity.ServiceType)(nil),
		(*entity.ServiceOrder)(nil),
		(*entity.ServiceOrderLabor)(nil),
	))

	svc := NewService(Params{
		Conns:  &database.Connections{Writer: db, Reader: db},
		Logger: zap.NewNop(),
	})
	return svc, db
}

func seedCatalog(t *testing.T, db *bun.DB) (*entity.VehicleModel, *entity.LaborItem) {
	t.Helper()
	ctx := context.Background()

	brand := &entity.VehicleBrand{BrandName: "Toyota"}
	_, err := db.NewInsert().Model(brand).Exec(ctx)
	require.NoError(t, err)

	model := &entity.VehicleModel{VehicleBrandID: brand.ID, ModelName: "Corolla", YearFrom: 2015, YearTo: 2024}
	_, err = db.NewInsert().Model(model).Exec(ctx)
	require.NoError(t, err)

	cat := &entity.LaborCategory{CategoryName: "Mechanical"}
	_, err = db.NewInsert().Model(cat).Exec(ctx)
	require.NoError(t, err)

	item := &entity.LaborItem{LaborCategoryID: cat.ID, ItemName: "Oil change", StandardHours: 0.5, StandardRate: 50, CostRate: 30}
	_, err = db.NewInsert().Model(item).Exec(ctx)
	require.NoError(t, err)

	return model, item
}

func TestCreateOrderGeneratesNumberAndDefaults(t *testing.T) {
	svc, db := testSetup(t)
	model, _ := seedCatalog(t, db)
	ctx := context.Background()

	order := &entity.ServiceOrder{VehicleModelID: model.ID, CustomerName: "A. Driver"}
	require.NoError(t, svc.CreateOrder(ctx, order))

	require.NotZero(t, order.ID)
	require.Regexp(t, `^SO-\d{8}-0001$`, order.OrderNumber)
	require.Equal(t, entity.ServiceStatusOpen, order.Status)
	require.False(t, order.OpenedAt.IsZero())
}

func TestCreateOrderRejectsUnknownModel(t *testing.T) {
	svc, db := testSetup(t)
	seedCatalog(t, db)

	order := &entity.ServiceOrder{VehicleModelID: 9999, CustomerName: "A. Driver"}
	err := svc.CreateOrder(context.Background(), order)
	require.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestCreateLaborSnapshotsCatalogRates(t *testing.T) {
	svc, db := testSetup(t)
	model, item := seedCatalog(t, db)
	ctx := context.Background()

	order := &entity.ServiceOrder{VehicleModelID: model.ID, CustomerName: "A. Driver"}
	require.NoError(t, svc.CreateOrder(ctx, order))

	labor := &entity.ServiceOrderLabor{ServiceOrderID: order.ID, LaborItemID: item.ID, Hours: 2}
	require.NoError(t, svc.CreateLabor(ctx, labor))

	require.Equal(t, "Oil change", labor.Description)
	require.Equal(t, 50.0, labor.HourlyRate)
	require.Equal(t, 30.0, labor.CostRate)
	require.Equal(t, 100.0, labor.TotalCost)
	require.Equal(t, entity.LaborStatusPending, labor.Status)

	// Renaming the catalog item must not rewrite the existing line.
	item.ItemName = "Premium oil change"
	item.StandardRate = 90
	_, err := db.NewUpdate().Model(item).WherePK().Exec(ctx)
	require.NoError(t, err)

	got, err := svc.GetLabor(ctx, labor.ID)
	require.NoError(t, err)
	require.Equal(t, "Oil change", got.Description)
	require.Equal(t, 50.0, got.HourlyRate)
}

func TestCreateLaborDefaultsHoursFromCatalog(t *testing.T) {
	svc, db := testSetup(t)
	model, item := seedCatalog(t, db)
	ctx := context.Background()

	order := &entity.ServiceOrder{VehicleModelID: model.ID, CustomerName: "A. Driver"}
	require.NoError(t, svc.CreateOrder(ctx, order))

	labor := &entity.ServiceOrderLabor{ServiceOrderID: order.ID, LaborItemID: item.ID}
	require.NoError(t, svc.CreateLabor(ctx, labor))
	require.Equal(t, 0.5, labor.Hours)
	require.Equal(t, 25.0, labor.TotalCost)
}

func TestUpdateLaborRecomputesTotalAtSnapshotRate(t *testing.T) {
	svc, db := testSetup(t)
	model, item := seedCatalog(t, db)
	ctx := context.Background()

	order := &entity.ServiceOrder{VehicleModelID: model.ID, CustomerName: "A. Driver"}
	require.NoError(t, svc.CreateOrder(ctx, order))

	labor := &entity.ServiceOrderLabor{ServiceOrderID: order.ID, LaborItemID: item.ID, Hours: 1}
	require.NoError(t, svc.CreateLabor(ctx, labor))

	hours := 3.0
	status := entity.LaborStatusDone
	updated, err := svc.UpdateLabor(ctx, labor.ID, LaborPatch{Hours: &hours, Status: &status})
	require.NoError(t, err)
	require.Equal(t, 150.0, updated.TotalCost)
	require.Equal(t, entity.LaborStatusDone, updated.Status)
	require.Equal(t, 50.0, updated.HourlyRate)
	require.Equal(t, order.ID, updated.ServiceOrderID)
	require.Equal(t, item.ID, updated.LaborItemID)
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	svc, db := testSetup(t)
	model, _ := seedCatalog(t, db)
	ctx := context.Background()

	open := &entity.ServiceOrder{VehicleModelID: model.ID, CustomerName: "A"}
	require.NoError(t, svc.CreateOrder(ctx, open))
	completed := &entity.ServiceOrder{VehicleModelID: model.ID, CustomerName: "B", Status: entity.ServiceStatusCompleted}
	require.NoError(t, svc.CreateOrder(ctx, completed))

	orders, err := svc.ListOrders(ctx, entity.ServiceStatusCompleted)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "B", orders[0].CustomerName)

	all, err := svc.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
