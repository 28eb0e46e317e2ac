package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/gearbox-hq/gearbox/internal/cache"
	"github.com/gearbox-hq/gearbox/internal/config"
	"github.com/gearbox-hq/gearbox/internal/database"
	"github.com/gearbox-hq/gearbox/internal/dto"
	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

var tracer = otel.Tracer("github.com/gearbox-hq/gearbox/service/reports")

// Service computes financial reports from the transactional tables.
type Service struct {
	conns  *database.Connections
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Conns  *database.Connections
	Store  cache.Store
	Config config.Config
	Logger *zap.Logger
}

// NewService wires a new reports Service.
func NewService(p Params) *Service {
	return &Service{
		conns:  p.Conns,
		store:  p.Store,
		ttl:    p.Config.Inventory.ReportCacheTTL,
		logger: p.Logger,
		now:    time.Now,
	}
}

// Range is a normalized reporting window.
type Range struct {
	From time.Time
	To   time.Time
}

// NormalizeRange widens the window to whole days: from is floored to the
// start of its day and to is raised to the last instant of its day. Zero
// values default to the start of the current month and the current day.
func NormalizeRange(from, to time.Time, now time.Time) (Range, error) {
	now = now.UTC()
	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() {
		to = now
	}

	from = from.UTC()
	to = to.UTC()
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999999, time.UTC)

	if from.After(to) {
		return Range{}, errorbank.BadRequest("fromDate must not be after toDate")
	}
	return Range{From: from, To: to}, nil
}

// IncomeStatement aggregates revenue, cost of goods and expenses for the
// window. serviceOrderStatus optionally restricts order-linked figures to
// orders in that status. Results are cached for a short TTL since the
// report fans out over six aggregate queries.
func (s *Service) IncomeStatement(ctx context.Context, from, to time.Time, serviceOrderStatus string) (*dto.IncomeStatement, error) {
	ctx, span := tracer.Start(ctx, "ReportService.IncomeStatement")
	defer span.End()

	rng, err := NormalizeRange(from, to, s.now())
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports:income-statement:%d:%d:%s", rng.From.Unix(), rng.To.Unix(), serviceOrderStatus)
	if raw, err := s.store.Get(ctx, key); err == nil {
		var cached dto.IncomeStatement
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) && s.logger != nil {
		s.logger.Warn("report cache lookup failed", zap.Error(err))
	}

	stmt, err := s.computeIncomeStatement(ctx, rng, serviceOrderStatus)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(stmt); err == nil {
		if err := s.store.Set(ctx, key, raw, s.ttl); err != nil && s.logger != nil {
			s.logger.Warn("report cache write failed", zap.Error(err))
		}
	}
	return stmt, nil
}

func (s *Service) computeIncomeStatement(ctx context.Context, rng Range, status string) (*dto.IncomeStatement, error) {
	serviceRevenue, err := s.sumLabor(ctx, rng, status, "sol.total_cost")
	if err != nil {
		return nil, s.internal("aggregate service revenue", err)
	}
	laborCost, err := s.sumLabor(ctx, rng, status, "sol.hours * sol.cost_rate")
	if err != nil {
		return nil, s.internal("aggregate labor cost", err)
	}
	partsSale, err := s.sumUsage(ctx, rng, status, "pbu.quantity_used * pbu.unit_price")
	if err != nil {
		return nil, s.internal("aggregate parts sale", err)
	}
	costOfGoods, err := s.sumUsage(ctx, rng, status, "pbu.quantity_used * pbu.unit_cost")
	if err != nil {
		return nil, s.internal("aggregate cost of goods", err)
	}
	operatingCost, err := s.sumOperating(ctx, rng)
	if err != nil {
		return nil, s.internal("aggregate operating cost", err)
	}
	partsPurchase, err := s.sumPurchases(ctx, rng)
	if err != nil {
		return nil, s.internal("aggregate parts purchases", err)
	}

	stmt := &dto.IncomeStatement{
		FromDate:        rng.From,
		ToDate:          rng.To,
		ServiceRevenue:  serviceRevenue,
		PartsSale:       partsSale,
		TotalRevenue:    serviceRevenue + partsSale,
		CostOfGoodsSold: costOfGoods,
		LaborCost:       laborCost,
		OperatingCost:   operatingCost,
		PartsPurchase:   partsPurchase,
	}
	stmt.GrossProfit = stmt.TotalRevenue - stmt.CostOfGoodsSold
	stmt.TotalExpenses = stmt.LaborCost + stmt.OperatingCost + stmt.PartsPurchase
	stmt.NetProfit = stmt.GrossProfit - stmt.TotalExpenses
	if stmt.TotalRevenue != 0 {
		stmt.GrossProfitMargin = stmt.GrossProfit / stmt.TotalRevenue * 100
		stmt.NetProfitMargin = stmt.NetProfit / stmt.TotalRevenue * 100
	}
	return stmt, nil
}

// The sums scan into sql.NullFloat64 since SUM over an empty window is NULL.
func (s *Service) sumLabor(ctx context.Context, rng Range, status, expr string) (float64, error) {
	var total sql.NullFloat64
	q := s.conns.Reader.NewSelect().
		Model((*entity.ServiceOrderLabor)(nil)).
		ModelTableExpr("service_order_labors AS sol").
		Join("JOIN service_orders AS so ON so.id = sol.service_order_id").
		ColumnExpr("SUM(" + expr + ")").
		Where("so.opened_at BETWEEN ? AND ?", rng.From, rng.To)
	if status != "" {
		q = q.Where("so.status = ?", status)
	}
	err := q.Scan(ctx, &total)
	return total.Float64, err
}

func (s *Service) sumUsage(ctx context.Context, rng Range, status, expr string) (float64, error) {
	var total sql.NullFloat64
	q := s.conns.Reader.NewSelect().
		Model((*entity.PartBatchUsage)(nil)).
		ModelTableExpr("part_batch_usages AS pbu").
		ColumnExpr("SUM(" + expr + ")").
		Where("pbu.used_at BETWEEN ? AND ?", rng.From, rng.To)
	if status != "" {
		q = q.Join("JOIN service_orders AS so ON so.id = pbu.service_order_id").
			Where("so.status = ?", status)
	}
	err := q.Scan(ctx, &total)
	return total.Float64, err
}

func (s *Service) sumOperating(ctx context.Context, rng Range) (float64, error) {
	var total sql.NullFloat64
	err := s.conns.Reader.NewSelect().
		Model((*entity.OperatingExpense)(nil)).
		ColumnExpr("SUM(amount)").
		Where("incurred_at BETWEEN ? AND ?", rng.From, rng.To).
		Scan(ctx, &total)
	return total.Float64, err
}

func (s *Service) sumPurchases(ctx context.Context, rng Range) (float64, error) {
	var total sql.NullFloat64
	err := s.conns.Reader.NewSelect().
		Model((*entity.PurchaseOrderItem)(nil)).
		ModelTableExpr("purchase_order_items AS poi").
		Join("JOIN purchase_orders AS po ON po.id = poi.purchase_order_id").
		ColumnExpr("SUM(poi.total_cost)").
		Where("po.ordered_at BETWEEN ? AND ?", rng.From, rng.To).
		Where("po.status != ?", entity.PurchaseStatusCanceled).
		Scan(ctx, &total)
	return total.Float64, err
}

func (s *Service) internal(action string, err error) *errorbank.AppError {
	if s.logger != nil {
		s.logger.Error("report aggregation failed", zap.String("action", action), zap.Error(err))
	}
	return errorbank.Internal("failed to "+action, errorbank.WithCause(err))
}
