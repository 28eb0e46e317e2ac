package positions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/presentation/http/response"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	positionssvc "github.com/gearbox-hq/gearbox/internal/service/positions"
	"github.com/gearbox-hq/gearbox/internal/transport/http/resource"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Handler exposes staff positions over HTTP. Routes are mounted by hand
// instead of the generic registrar because delete is a soft delete.
type Handler struct {
	svc *positionssvc.Service
}

// NewHandler constructs a positions Handler.
func NewHandler(svc *positionssvc.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts /api/Positions.
func Register(api *httpserver.API, h *Handler) {
	g := api.Group.Group("/Positions")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type positionPayload struct {
	PositionName *string `json:"positionName"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"isActive"`
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	rows, err := h.svc.Positions.List(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(rows).Build()
}

func (h *Handler) get(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	pos, err := h.svc.Positions.Get(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	if pos.IsDeleted {
		return b.WithError(errorbank.NotFound("position not found")).Build()
	}
	return b.WithData(pos).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var p positionPayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if p.PositionName == nil || *p.PositionName == "" {
		return b.WithError(errorbank.BadRequest("positionName is required")).Build()
	}

	pos := &entity.Position{PositionName: *p.PositionName, IsActive: true}
	if p.Description != nil {
		pos.Description = *p.Description
	}
	if p.IsActive != nil {
		pos.IsActive = *p.IsActive
	}

	if err := h.svc.Positions.Create(c.Request().Context(), pos); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(pos).WithMessage("position created").Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	var p positionPayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	pos, err := h.svc.Positions.Update(c.Request().Context(), id, func(existing *entity.Position) error {
		if existing.IsDeleted {
			return errorbank.NotFound("position not found")
		}
		if p.PositionName != nil {
			existing.PositionName = *p.PositionName
		}
		if p.Description != nil {
			existing.Description = *p.Description
		}
		if p.IsActive != nil {
			existing.IsActive = *p.IsActive
		}
		return nil
	})
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(pos).WithMessage("position updated").Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("position deleted").Build()
}
