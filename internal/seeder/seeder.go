package seeder

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/entity"
)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// Module registers the Seeder with Fx.
var Module = fx.Provide(New)

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Catalog seeds the reference catalog (brands, service types, labor
// categories, positions) if the rows are missing.
func (s *Seeder) Catalog(ctx context.Context) error {
	now := time.Now().UTC()

	brands := []entity.VehicleBrand{
		{BrandName: "Toyota", Country: "Japan"},
		{BrandName: "Ford", Country: "United States"},
		{BrandName: "Volkswagen", Country: "Germany"},
	}
	for i := range brands {
		brands[i].StampCreated(now)
		_, err := s.db.NewInsert().Model(&brands[i]).
			On("CONFLICT (brand_name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	types := []entity.ServiceType{
		{TypeName: "Periodic Maintenance", Description: "Scheduled service intervals", BaseRate: 45},
		{TypeName: "Engine Repair", Description: "Engine diagnostics and repair", BaseRate: 65},
		{TypeName: "Bodywork", Description: "Body and paint work", BaseRate: 55},
	}
	for i := range types {
		types[i].StampCreated(now)
		_, err := s.db.NewInsert().Model(&types[i]).
			On("CONFLICT (type_name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	categories := []entity.LaborCategory{
		{CategoryName: "Mechanical", Description: "Engine, transmission and drivetrain work"},
		{CategoryName: "Electrical", Description: "Wiring, diagnostics and electronics"},
	}
	for i := range categories {
		categories[i].StampCreated(now)
		_, err := s.db.NewInsert().Model(&categories[i]).
			On("CONFLICT (category_name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	positions := []entity.Position{
		{PositionName: "Mechanic", Description: "Workshop floor technician", IsActive: true},
		{PositionName: "Service Advisor", Description: "Customer-facing intake", IsActive: true},
		{PositionName: "Parts Clerk", Description: "Inventory and purchasing", IsActive: true},
	}
	for i := range positions {
		positions[i].StampCreated(now)
		_, err := s.db.NewInsert().Model(&positions[i]).
			On("CONFLICT (position_name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded catalog",
			zap.Int("brands", len(brands)),
			zap.Int("serviceTypes", len(types)),
			zap.Int("laborCategories", len(categories)),
			zap.Int("positions", len(positions)),
		)
	}
	return nil
}
