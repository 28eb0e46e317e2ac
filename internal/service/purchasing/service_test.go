package purchasing

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

func testSetup(t *testing.T) (*Service, *entity.Part) {
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
		(*entity.PurchaseOrder)(nil),
		(*entity.PurchaseOrderItem)(nil),
	))

	group := &entity.PartGroup{GroupName: "Brakes"}
	_, err = db.NewInsert().Model(group).Exec(ctx)
	require.NoError(t, err)

	part := &entity.Part{PartGroupID: group.ID, PartName: "Brake Pad", PartNumber: "BP-1", UnitPrice: 30}
	_, err = db.NewInsert().Model(part).Exec(ctx)
	require.NoError(t, err)

	svc := NewService(Params{
		Conns:  &database.Connections{Writer: db, Reader: db},
		Logger: zap.NewNop(),
	})
	return svc, part
}

func TestCreateOrderGeneratesNumber(t *testing.T) {
	svc, _ := testSetup(t)
	ctx := context.Background()

	order := &entity.PurchaseOrder{SupplierName: "Acme"}
	require.NoError(t, svc.CreateOrder(ctx, order))
	require.NotZero(t, order.ID)
	require.Regexp(t, `^PO-\d{8}-0001$`, order.OrderNumber)
	require.Equal(t, entity.PurchaseStatusDraft, order.Status)
	require.False(t, order.OrderedAt.IsZero())

	second := &entity.PurchaseOrder{SupplierName: "Acme"}
	require.NoError(t, svc.CreateOrder(ctx, second))
	require.Regexp(t, `-0002$`, second.OrderNumber)
}

func TestCreateOrderRequiresSupplier(t *testing.T) {
	svc, _ := testSetup(t)

	err := svc.CreateOrder(context.Background(), &entity.PurchaseOrder{})
	require.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestCreateItemSnapshotsPartNameAndComputesTotal(t *testing.T) {
	svc, part := testSetup(t)
	ctx := context.Background()

	order := &entity.PurchaseOrder{SupplierName: "Acme"}
	require.NoError(t, svc.CreateOrder(ctx, order))

	item := &entity.PurchaseOrderItem{PurchaseOrderID: order.ID, PartID: part.ID, Quantity: 4, UnitCost: 12.5}
	require.NoError(t, svc.CreateItem(ctx, item))

	require.Equal(t, "Brake Pad", item.PartName)
	require.Equal(t, 50.0, item.TotalCost)
}

func TestCreateItemRejectsUnknownReferences(t *testing.T) {
	svc, part := testSetup(t)
	ctx := context.Background()

	err := svc.CreateItem(ctx, &entity.PurchaseOrderItem{PurchaseOrderID: 9999, PartID: part.ID, Quantity: 1})
	require.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())

	order := &entity.PurchaseOrder{SupplierName: "Acme"}
	require.NoError(t, svc.CreateOrder(ctx, order))

	err = svc.CreateItem(ctx, &entity.PurchaseOrderItem{PurchaseOrderID: order.ID, PartID: 9999, Quantity: 1})
	require.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestUpdateItemRecomputesTotal(t *testing.T) {
	svc, part := testSetup(t)
	ctx := context.Background()

	order := &entity.PurchaseOrder{SupplierName: "Acme"}
	require.NoError(t, svc.CreateOrder(ctx, order))

	item := &entity.PurchaseOrderItem{PurchaseOrderID: order.ID, PartID: part.ID, Quantity: 4, UnitCost: 10}
	require.NoError(t, svc.CreateItem(ctx, item))

	quantity := 6
	updated, err := svc.UpdateItem(ctx, item.ID, ItemPatch{Quantity: &quantity})
	require.NoError(t, err)
	require.Equal(t, 60.0, updated.TotalCost)
	require.Equal(t, "Brake Pad", updated.PartName)

	bad := 0
	_, err = svc.UpdateItem(ctx, item.ID, ItemPatch{Quantity: &bad})
	require.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestDeleteItem(t *testing.T) {
	svc, part := testSetup(t)
	ctx := context.Background()

	order := &entity.PurchaseOrder{SupplierName: "Acme"}
	require.NoError(t, svc.CreateOrder(ctx, order))

	item := &entity.PurchaseOrderItem{PurchaseOrderID: order.ID, PartID: part.ID, Quantity: 1, UnitCost: 2}
	require.NoError(t, svc.CreateItem(ctx, item))

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	_, err := svc.GetItem(ctx, item.ID)
	require.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}
