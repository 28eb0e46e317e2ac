package inventory

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/internal/entity"
	"github.com/gearbox-hq/gearbox/internal/presentation/http/response"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	inventorysvc "github.com/gearbox-hq/gearbox/internal/service/inventory"
	"github.com/gearbox-hq/gearbox/internal/transport/http/resource"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Handler exposes inventory batches and usages over HTTP.
type Handler struct {
	svc *inventorysvc.Service
}

// NewHandler constructs an inventory Handler.
func NewHandler(svc *inventorysvc.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts /api/PartInventoryBatches and /api/PartBatchUsages.
func Register(api *httpserver.API, h *Handler) {
	batches := api.Group.Group("/PartInventoryBatches")
	batches.GET("", h.listBatches)
	batches.GET("/:id", h.getBatch)
	batches.POST("", h.receiveBatch)
	batches.PUT("/:id", h.updateBatch)
	batches.DELETE("/:id", h.deleteBatch)

	usages := api.Group.Group("/PartBatchUsages")
	usages.GET("", h.listUsages)
	usages.GET("/batch/:batchId", h.listUsagesForBatch)
	usages.GET("/:id", h.getUsage)
	usages.POST("", h.recordUsage)
	usages.PUT("/:id", h.updateUsage)
	usages.DELETE("/:id", h.deleteUsage)
}

type batchPayload struct {
	PartID           *int64     `json:"partId"`
	QuantityReceived *int       `json:"quantityReceived"`
	UnitCost         *float64   `json:"unitCost"`
	SupplierName     *string    `json:"supplierName"`
	ReceivedAt       *time.Time `json:"receivedAt"`
	ExpiryDate       *time.Time `json:"expiryDate"`
}

type usagePayload struct {
	PartInventoryBatchID *int64     `json:"partInventoryBatchId"`
	ServiceOrderID       *int64     `json:"serviceOrderId"`
	QuantityUsed         *int       `json:"quantityUsed"`
	UsedAt               *time.Time `json:"usedAt"`
}

func (h *Handler) listBatches(c echo.Context) error {
	b := response.New(c)

	var partID int64
	if raw := c.QueryParam("partId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return b.WithError(errorbank.BadRequest("invalid partId", errorbank.WithCause(err))).Build()
		}
		partID = v
	}

	batches, err := h.svc.ListBatches(c.Request().Context(), partID)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(batches).Build()
}

func (h *Handler) getBatch(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	batch, err := h.svc.GetBatch(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(batch).Build()
}

func (h *Handler) receiveBatch(c echo.Context) error {
	b := response.New(c)

	var p batchPayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	batch := &entity.PartInventoryBatch{}
	if p.PartID != nil {
		batch.PartID = *p.PartID
	}
	if p.QuantityReceived != nil {
		batch.QuantityReceived = *p.QuantityReceived
	}
	if p.UnitCost != nil {
		batch.UnitCost = *p.UnitCost
	}
	if p.SupplierName != nil {
		batch.SupplierName = *p.SupplierName
	}
	if p.ReceivedAt != nil {
		batch.ReceivedAt = *p.ReceivedAt
	}
	if p.ExpiryDate != nil {
		batch.ExpiryDate = p.ExpiryDate
	}

	if err := h.svc.ReceiveBatch(c.Request().Context(), batch); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(batch).WithMessage("inventory batch received").Build()
}

func (h *Handler) updateBatch(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	var p batchPayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	batch, err := h.svc.UpdateBatch(c.Request().Context(), id, inventorysvc.BatchPatch{
		SupplierName: p.SupplierName,
		UnitCost:     p.UnitCost,
		ExpiryDate:   p.ExpiryDate,
	})
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(batch).WithMessage("inventory batch updated").Build()
}

func (h *Handler) deleteBatch(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	if err := h.svc.DeleteBatch(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("inventory batch deleted").Build()
}

func (h *Handler) listUsages(c echo.Context) error {
	b := response.New(c)

	var serviceOrderID int64
	if raw := c.QueryParam("serviceOrderId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return b.WithError(errorbank.BadRequest("invalid serviceOrderId", errorbank.WithCause(err))).Build()
		}
		serviceOrderID = v
	}

	usages, err := h.svc.ListUsages(c.Request().Context(), 0, serviceOrderID)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(usages).Build()
}

func (h *Handler) listUsagesForBatch(c echo.Context) error {
	b := response.New(c)

	batchID, err := strconv.ParseInt(c.Param("batchId"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid batch id", errorbank.WithCause(err))).Build()
	}

	usages, err := h.svc.ListUsages(c.Request().Context(), batchID, 0)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(usages).Build()
}

func (h *Handler) getUsage(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	usage, err := h.svc.GetUsage(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(usage).Build()
}

func (h *Handler) recordUsage(c echo.Context) error {
	b := response.New(c)

	var p usagePayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	var batchID, orderID int64
	var quantity int
	var usedAt time.Time
	if p.PartInventoryBatchID != nil {
		batchID = *p.PartInventoryBatchID
	}
	if p.ServiceOrderID != nil {
		orderID = *p.ServiceOrderID
	}
	if p.QuantityUsed != nil {
		quantity = *p.QuantityUsed
	}
	if p.UsedAt != nil {
		usedAt = *p.UsedAt
	}

	usage, err := h.svc.RecordUsage(c.Request().Context(), batchID, orderID, quantity, usedAt)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(usage).WithMessage("batch usage recorded").Build()
}

func (h *Handler) updateUsage(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	var p usagePayload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	usage, err := h.svc.UpdateUsage(c.Request().Context(), id, inventorysvc.UsagePatch{
		QuantityUsed: p.QuantityUsed,
		UsedAt:       p.UsedAt,
	})
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(usage).WithMessage("batch usage updated").Build()
}

func (h *Handler) deleteUsage(c echo.Context) error {
	b := response.New(c)

	id, err := resource.ParseID(c)
	if err != nil {
		return b.WithError(err).Build()
	}

	if err := h.svc.DeleteUsage(c.Request().Context(), id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("batch usage deleted").Build()
}
