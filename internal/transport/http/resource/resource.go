package resource

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/gearbox-hq/gearbox/internal/presentation/http/response"
	"github.com/gearbox-hq/gearbox/internal/service/crud"
	"github.com/gearbox-hq/gearbox/internal/storage"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// ParseID extracts the numeric id path parameter.
func ParseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errorbank.BadRequest("invalid id", errorbank.WithCause(err))
	}
	return id, nil
}

// IntQueryFilter maps an optional numeric query parameter onto a column
// equality filter, e.g. ?categoryId=3 to labor_category_id = 3.
func IntQueryFilter(c echo.Context, param, column string) (storage.QueryFn, error) {
	raw := c.QueryParam(param)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errorbank.BadRequest("invalid "+param, errorbank.WithCause(err))
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where(column+" = ?", v)
	}, nil
}

// FilterParam names a query parameter and the column it filters.
type FilterParam struct {
	Param  string
	Column string
}

// QueryFilters builds a Filters hook from parameter/column pairs.
func QueryFilters(pairs ...FilterParam) func(echo.Context) ([]storage.QueryFn, error) {
	return func(c echo.Context) ([]storage.QueryFn, error) {
		var fns []storage.QueryFn
		for _, p := range pairs {
			fn, err := IntQueryFilter(c, p.Param, p.Column)
			if err != nil {
				return nil, err
			}
			if fn != nil {
				fns = append(fns, fn)
			}
		}
		return fns, nil
	}
}

// Endpoint wires a crud.Service onto the uniform five-operation HTTP
// template. Bind builds a validated new entity from a POST body; Apply
// copies the allow-listed mutable fields from a PUT body onto the loaded
// row. Everything else about the template is identical across resources.
type Endpoint[T any, PT crud.Entity[T]] struct {
	Service *crud.Service[T, PT]
	Bind    func(echo.Context) (PT, error)
	Apply   func(echo.Context, PT) error
	// Filters derives optional list filters from query parameters.
	Filters func(echo.Context) ([]storage.QueryFn, error)

	CreatedMessage string
	UpdatedMessage string
	DeletedMessage string
}

// Register mounts the endpoint under the given path on the API group.
func Register[T any, PT crud.Entity[T]](g *echo.Group, path string, ep Endpoint[T, PT]) {
	r := g.Group(path)
	r.GET("", ep.list)
	r.GET("/:id", ep.getByID)
	r.POST("", ep.create)
	r.PUT("/:id", ep.update)
	r.DELETE("/:id", ep.remove)
}

func (ep Endpoint[T, PT]) list(c echo.Context) error {
	b := response.New(c)

	var fns []storage.QueryFn
	if ep.Filters != nil {
		var err error
		fns, err = ep.Filters(c)
		if err != nil {
			return b.WithError(err).Build()
		}
	}

	rows, err := ep.Service.List(c.Request().Context(), fns...)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(rows).Build()
}

func (ep Endpoint[T, PT]) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	row, err := ep.Service.Get(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(row).Build()
}

func (ep Endpoint[T, PT]) create(c echo.Context) error {
	b := response.New(c)

	row, err := ep.Bind(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	if err := ep.Service.Create(c.Request().Context(), row); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(row).WithMessage(ep.CreatedMessage).Build()
}

func (ep Endpoint[T, PT]) update(c echo.Context) error {
	b := response.New(c)

	id, err := ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	row, err := ep.Service.Update(c.Request().Context(), id, func(existing PT) error {
		return ep.Apply(c, existing)
	})
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(row).WithMessage(ep.UpdatedMessage).Build()
}

func (ep Endpoint[T, PT]) remove(c echo.Context) error {
	b := response.New(c)

	id, err := ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	if err := ep.Service.Delete(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage(ep.DeletedMessage).Build()
}
