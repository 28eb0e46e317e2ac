package purchasing

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/presentation/http/response"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	purchasingsvc "github.com/gearbox-hq/gearbox/internal/service/purchasing"
	"github.com/gearbox-hq/gearbox/internal/transport/http/resource"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Handler exposes purchase orders and line items over HTTP.
type Handler struct {
	svc *purchasingsvc.Service
}

// NewHandler constructs a purchasing Handler.
func NewHandler(svc *purchasingsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts /api/PurchaseOrders and /api/PurchaseOrderItems.
func Register(api *httpserver.API, h *Handler) {
	orders := api.Group.Group("/PurchaseOrders")
	orders.GET("", h.listOrders)
	orders.GET("/:id", h.getOrder)
	orders.POST("", h.createOrder)

	items := api.Group.Group("/PurchaseOrderItems")
	items.GET("", h.listItems)
	items.GET("/:id", h.getItem)
	items.POST("", h.createItem)
	items.PUT("/:id", h.updateItem)
	items.DELETE("/:id", h.deleteItem)
}

type orderPayload struct {
	SupplierName *string    `json:"supplierName"`
	Status       *string    `json:"status"`
	OrderedAt    *time.Time `json:"orderedAt"`
}

type itemPayload struct {
	PurchaseOrderID *int64   `json:"purchaseOrderId"`
	PartID          *int64   `json:"partId"`
	Quantity        *int     `json:"quantity"`
	UnitCost        *float64 `json:"unitCost"`
}

func (h *Handler) listOrders(c echo.Context) error {
	b := response.New(c)

	orders, err := h.svc.ListOrders(c.Request().Context())
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

	order := &entity.PurchaseOrder{}
	if p.SupplierName != nil {
		order.SupplierName = *p.SupplierName
	}
	if p.Status != nil {
		order.Status = *p.Status
	}
	if p.OrderedAt != nil {
		order.OrderedAt = *p.OrderedAt
	}

	if err := h.svc.CreateOrder(c.Request().Context(), order); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(order).WithMessage("purchase order created").Build()
}

func (h *Handler) listItems(c echo.Context) error {
	b := response.New(c)

	var orderID int64
	if raw := c.QueryParam("purchaseOrderId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return b.WithError(errorbank.BadRequest("invalid purchaseOrderId", errorbank.WithCause(err))).Build()
		}
		orderID = v
	}

	items, err := h.svc.ListItems(c.Request().Context(), orderID)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(items).Build()
}

func (h *Handler) getItem(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	item, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(item).Build()
}

func (h *Handler) createItem(c echo.Context) error {
	b := response.New(c)

	var p itemPayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	item := &entity.PurchaseOrderItem{}
	if p.PurchaseOrderID != nil {
		item.PurchaseOrderID = *p.PurchaseOrderID
	}
	if p.PartID != nil {
		item.PartID = *p.PartID
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.UnitCost != nil {
		item.UnitCost = *p.UnitCost
	}

	if err := h.svc.CreateItem(c.Request().Context(), item); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(item).WithMessage("purchase order item created").Build()
}

func (h *Handler) updateItem(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	var p itemPayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	item, err := h.svc.UpdateItem(c.Request().Context(), id, purchasingsvc.ItemPatch{
		Quantity: p.Quantity,
		UnitCost: p.UnitCost,
	})
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(item).WithMessage("purchase order item updated").Build()
}

func (h *Handler) deleteItem(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	if err := h.svc.DeleteItem(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("purchase order item deleted").Build()
}
