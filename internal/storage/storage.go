package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gearbox-hq/gearbox/internal/database"
)

var tracer = otel.Tracer("github.com/gearbox-hq/gearbox/storage")

// ErrNotFound is returned when a requested row does not exist. Absence is a
// regular outcome, not a fault; callers translate it at their own boundary.
var ErrNotFound = errors.New("record not found")

// QueryFn shapes a select query so filtering and ordering happen in the
// store instead of in memory.
type QueryFn func(*bun.SelectQuery) *bun.SelectQuery

type stagedOp func(ctx context.Context, tx bun.IDB) error

// UnitOfWork collects staged mutations from every repository scoped to it
// and commits them as one transaction. One unit of work serves exactly one
// request; it must never be shared across concurrent requests.
type UnitOfWork struct {
	writer *bun.DB
	reader *bun.DB
	ops    []stagedOp
}

// NewUnitOfWork scopes a fresh unit of work to the configured connections.
func NewUnitOfWork(conns *database.Connections) *UnitOfWork {
	return &UnitOfWork{writer: conns.Writer, reader: conns.Reader}
}

func (u *UnitOfWork) register(op stagedOp) {
	u.ops = append(u.ops, op)
}

// Pending reports the number of staged operations awaiting commit.
func (u *UnitOfWork) Pending() int {
	return len(u.ops)
}

// SaveChanges commits every staged Add/Update/Delete in a single
// transaction. Any failure rolls the whole batch back, leaving prior state
// unchanged. The staged set is consumed either way; a unit of work is not
// reused after a failed commit.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if len(u.ops) == 0 {
		return nil
	}
	ctx, span := tracer.Start(ctx, "UnitOfWork.SaveChanges",
		trace.WithAttributes(attribute.Int("staged", len(u.ops))))
	defer span.End()

	ops := u.ops
	u.ops = nil

	err := u.writer.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, op := range ops {
			if err := op(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit failed")
	}
	return err
}

// Repository is typed data access for one entity kind. Reads go straight to
// the reader connection; writes are staged on the owning unit of work and
// only become visible once SaveChanges commits.
type Repository[T any] struct {
	uow *UnitOfWork
}

// RepositoryFor scopes a typed repository to the given unit of work.
func RepositoryFor[T any](uow *UnitOfWork) *Repository[T] {
	return &Repository[T]{uow: uow}
}

// GetAll returns every row, unfiltered and unordered.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.uow.reader.NewSelect().Model(&out).Scan(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a row by primary key, or ErrNotFound.
func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	ctx, span := tracer.Start(ctx, "Repository.GetByID",
		trace.WithAttributes(attribute.Int64("entity.id", id)))
	defer span.End()

	row := new(T)
	err := r.uow.reader.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return row, nil
}

// Find runs a pushed-down query shaped by the supplied functions.
func (r *Repository[T]) Find(ctx context.Context, fns ...QueryFn) ([]T, error) {
	var out []T
	q := r.uow.reader.NewSelect().Model(&out)
	for _, fn := range fns {
		if fn != nil {
			q = fn(q)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// Count reports the total number of rows.
func (r *Repository[T]) Count(ctx context.Context) (int, error) {
	return r.uow.reader.NewSelect().Model((*T)(nil)).Count(ctx)
}

// Add stages an insert. The entity's autoincrement key is populated during
// SaveChanges.
func (r *Repository[T]) Add(row *T) {
	r.uow.register(func(ctx context.Context, tx bun.IDB) error {
		_, err := tx.NewInsert().Model(row).Exec(ctx)
		return err
	})
}

// Update stages a full-record replace of the row with the entity's key.
func (r *Repository[T]) Update(row *T) {
	r.uow.register(func(ctx context.Context, tx bun.IDB) error {
		_, err := tx.NewUpdate().Model(row).WherePK().Exec(ctx)
		return err
	})
}

// Delete stages a hard removal.
func (r *Repository[T]) Delete(row *T) {
	r.uow.register(func(ctx context.Context, tx bun.IDB) error {
		_, err := tx.NewDelete().Model(row).WherePK().Exec(ctx)
		return err
	})
}
