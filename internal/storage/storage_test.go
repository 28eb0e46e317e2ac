package storage

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
)

func testConns(t *testing.T) *database.Connections {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.ResetModel(context.Background(),
		(*entity.VehicleBrand)(nil),
	))
	return &database.Connections{Writer: db, Reader: db}
}

func TestRepositoryAddAndGetByID(t *testing.T) {
	conns := testConns(t)
	ctx := context.Background()

	uow := NewUnitOfWork(conns)
	repo := RepositoryFor[entity.VehicleBrand](uow)

	brand := &entity.VehicleBrand{BrandName: "Toyota", Country: "Japan"}
	repo.Add(brand)
	require.Equal(t, 1, uow.Pending())
	require.NoError(t, uow.SaveChanges(ctx))
	require.NotZero(t, brand.ID)

	got, err := repo.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	require.Equal(t, "Toyota", got.BrandName)
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	conns := testConns(t)

	repo := RepositoryFor[entity.VehicleBrand](NewUnitOfWork(conns))
	_, err := repo.GetByID(context.Background(), 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStagedWritesInvisibleUntilSave(t *testing.T) {
	conns := testConns(t)
	ctx := context.Background()

	uow := NewUnitOfWork(conns)
	repo := RepositoryFor[entity.VehicleBrand](uow)
	repo.Add(&entity.VehicleBrand{BrandName: "Ford"})

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	require.NoError(t, uow.SaveChanges(ctx))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestSaveChangesRollsBackOnFailure(t *testing.T) {
	conns := testConns(t)
	ctx := context.Background()

	seed := NewUnitOfWork(conns)
	seedRepo := RepositoryFor[entity.VehicleBrand](seed)
	seedRepo.Add(&entity.VehicleBrand{BrandName: "Volkswagen"})
	require.NoError(t, seed.SaveChanges(ctx))

	// Second op violates the unique brand name, the first must roll back too.
	uow := NewUnitOfWork(conns)
	repo := RepositoryFor[entity.VehicleBrand](uow)
	repo.Add(&entity.VehicleBrand{BrandName: "Honda"})
	repo.Add(&entity.VehicleBrand{BrandName: "Volkswagen"})
	require.Error(t, uow.SaveChanges(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Zero(t, uow.Pending())
}

func TestSaveChangesNoOpsIsNoop(t *testing.T) {
	conns := testConns(t)
	require.NoError(t, NewUnitOfWork(conns).SaveChanges(context.Background()))
}

func TestFindWithQueryFns(t *testing.T) {
	conns := testConns(t)
	ctx := context.Background()

	uow := NewUnitOfWork(conns)
	repo := RepositoryFor[entity.VehicleBrand](uow)
	repo.Add(&entity.VehicleBrand{BrandName: "Toyota", Country: "Japan"})
	repo.Add(&entity.VehicleBrand{BrandName: "Honda", Country: "Japan"})
	repo.Add(&entity.VehicleBrand{BrandName: "Ford", Country: "United States"})
	require.NoError(t, uow.SaveChanges(ctx))

	rows, err := repo.Find(ctx, WhereEq("country", "Japan"), OrderBy("brand_name ASC"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Honda", rows[0].BrandName)
	require.Equal(t, "Toyota", rows[1].BrandName)
}

func TestUpdateAndDelete(t *testing.T) {
	conns := testConns(t)
	ctx := context.Background()

	uow := NewUnitOfWork(conns)
	repo := RepositoryFor[entity.VehicleBrand](uow)
	brand := &entity.VehicleBrand{BrandName: "Fiat", Country: "Italy"}
	repo.Add(brand)
	require.NoError(t, uow.SaveChanges(ctx))

	brand.Country = "Italia"
	repo.Update(brand)
	require.NoError(t, uow.SaveChanges(ctx))

	got, err := repo.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	require.Equal(t, "Italia", got.Country)

	repo.Delete(brand)
	require.NoError(t, uow.SaveChanges(ctx))

	_, err = repo.GetByID(ctx, brand.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
