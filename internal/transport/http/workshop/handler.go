package workshop

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/presentation/http/response"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	workshopsvc "github.com/gearbox-hq/gearbox/internal/service/workshop"
	"github.com/gearbox-hq/gearbox/internal/transport/http/resource"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Handler exposes service types, service orders and labor lines over HTTP.
type Handler struct {
	svc *workshopsvc.Service
}

// NewHandler constructs a workshop Handler.
func NewHandler(svc *workshopsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts /api/ServiceTypes, /api/ServiceOrders and
// /api/ServiceOrderLabors.
func Register(api *httpserver.API, h *Handler) {
	resource.Register(api.Group, "/ServiceTypes", resource.Endpoint[entity.ServiceType, *entity.ServiceType]{
		Service:        h.svc.Types,
		Bind:           bindType,
		Apply:          applyType,
		CreatedMessage: "service type created",
		UpdatedMessage: "service type updated",
		DeletedMessage: "service type deleted",
	})

	orders := api.Group.Group("/ServiceOrders")
	orders.GET("", h.listOrders)
	orders.GET("/:id", h.getOrder)
	orders.POST("", h.createOrder)

	labors := api.Group.Group("/ServiceOrderLabors")
	labors.GET("", h.listLabors)
	labors.GET("/:id", h.getLabor)
	labors.POST("", h.createLabor)
	labors.PUT("/:id", h.updateLabor)
	labors.DELETE("/:id", h.deleteLabor)
}

type typePayload struct {
	TypeName    *string  `json:"typeName"`
	Description *string  `json:"description"`
	BaseRate    *float64 `json:"baseRate"`
}

type orderPayload struct {
	VehicleModelID *int64     `json:"vehicleModelId"`
	CustomerName   *string    `json:"customerName"`
	Status         *string    `json:"status"`
	OpenedAt       *time.Time `json:"openedAt"`
}

type laborPayload struct {
	ServiceOrderID *int64   `json:"serviceOrderId"`
	LaborItemID    *int64   `json:"laborItemId"`
	Description    *string  `json:"description"`
	Status         *string  `json:"status"`
	Hours          *float64 `json:"hours"`
}

func bindType(c echo.Context) (*entity.ServiceType, error) {
	var p typePayload
	if err := c.Bind(&p); err != nil {
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.TypeName == nil || *p.TypeName == "" {
		return nil, errorbank.BadRequest("typeName is required")
	}

	st := &entity.ServiceType{TypeName: *p.TypeName}
	if p.Description != nil {
		st.Description = *p.Description
	}
	if p.BaseRate != nil {
		st.BaseRate = *p.BaseRate
	}
	return st, nil
}

func applyType(c echo.Context, existing *entity.ServiceType) error {
	var p typePayload
	if err := c.Bind(&p); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.TypeName != nil {
		existing.TypeName = *p.TypeName
	}
	if p.Description != nil {
		existing.Description = *p.Description
	}
	if p.BaseRate != nil {
		existing.BaseRate = *p.BaseRate
	}
	return nil
}

func (h *Handler) listOrders(c echo.Context) error {
	b := response.New(c)

	orders, err := h.svc.ListOrders(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(orders).Build()
}

func (h *Handler) getOrder(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	order, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(order).Build()
}

func (h *Handler) createOrder(c echo.Context) error {
	b := response.New(c)

	var p orderPayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	order := &entity.ServiceOrder{}
	if p.VehicleModelID != nil {
		order.VehicleModelID = *p.VehicleModelID
	}
	if p.CustomerName != nil {
		order.CustomerName = *p.CustomerName
	}
	if p.Status != nil {
		order.Status = *p.Status
	}
	if p.OpenedAt != nil {
		order.OpenedAt = *p.OpenedAt
	}

	if err := h.svc.CreateOrder(c.Request().Context(), order); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(order).WithMessage("service order created").Build()
}

func (h *Handler) listLabors(c echo.Context) error {
	b := response.New(c)

	var orderID int64
	if raw := c.QueryParam("serviceOrderId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return b.WithError(errorbank.BadRequest("invalid serviceOrderId", errorbank.WithCause(err))).Build()
		}
		orderID = v
	}

	labors, err := h.svc.ListLabors(c.Request().Context(), orderID)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(labors).Build()
}

func (h *Handler) getLabor(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	labor, err := h.svc.GetLabor(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(labor).Build()
}

func (h *Handler) createLabor(c echo.Context) error {
	b := response.New(c)

	var p laborPayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	labor := &entity.ServiceOrderLabor{}
	if p.ServiceOrderID != nil {
		labor.ServiceOrderID = *p.ServiceOrderID
	}
	if p.LaborItemID != nil {
		labor.LaborItemID = *p.LaborItemID
	}
	if p.Description != nil {
		labor.Description = *p.Description
	}
	if p.Status != nil {
		labor.Status = *p.Status
	}
	if p.Hours != nil {
		labor.Hours = *p.Hours
	}

	if err := h.svc.CreateLabor(c.Request().Context(), labor); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(labor).WithMessage("service order labor created").Build()
}

func (h *Handler) updateLabor(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	var p laborPayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	labor, err := h.svc.UpdateLabor(c.Request().Context(), id, workshopsvc.LaborPatch{
		Description: p.Description,
		Status:      p.Status,
		Hours:       p.Hours,
	})
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(labor).WithMessage("service order labor updated").Build()
}

func (h *Handler) deleteLabor(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	if err := h.svc.DeleteLabor(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("service order labor deleted").Build()
}
