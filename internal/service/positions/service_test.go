package positions

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

func testService(t *testing.T) *Service {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.ResetModel(context.Background(), (*entity.Position)(nil)))

	return NewService(Params{
		Conns:  &database.Connections{Writer: db, Reader: db},
		Logger: zap.NewNop(),
	})
}

func TestDeleteIsSoft(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	pos := &entity.Position{PositionName: "Mechanic", IsActive: true}
	require.NoError(t, svc.Positions.Create(ctx, pos))

	require.NoError(t, svc.Delete(ctx, pos.ID))

	// The row survives; it is only flagged.
	got, err := svc.Positions.Get(ctx, pos.ID)
	require.NoError(t, err)
	require.True(t, got.IsDeleted)
	require.False(t, got.IsActive)

	// A second delete reports not found.
	err = svc.Delete(ctx, pos.ID)
	require.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestListHidesDeletedAndInactive(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	active := &entity.Position{PositionName: "Mechanic", IsActive: true}
	require.NoError(t, svc.Positions.Create(ctx, active))

	inactive := &entity.Position{PositionName: "Night Guard", IsActive: false}
	require.NoError(t, svc.Positions.Create(ctx, inactive))

	deleted := &entity.Position{PositionName: "Clerk", IsActive: true}
	require.NoError(t, svc.Positions.Create(ctx, deleted))
	require.NoError(t, svc.Delete(ctx, deleted.ID))

	rows, err := svc.Positions.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Mechanic", rows[0].PositionName)
}

func TestDeleteUnknownPosition(t *testing.T) {
	svc := testService(t)
	err := svc.Delete(context.Background(), 404)
	require.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}
