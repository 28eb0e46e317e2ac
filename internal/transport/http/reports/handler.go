package reports

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/internal/presentation/http/response"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	reportssvc "github.com/gearbox-hq/gearbox/internal/service/reports"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

// Handler exposes the financial reports over HTTP.
type Handler struct {
	svc *reportssvc.Service
}

// NewHandler constructs a reports Handler.
func NewHandler(svc *reportssvc.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts /api/ProfitReports.
func Register(api *httpserver.API, h *Handler) {
	g := api.Group.Group("/ProfitReports")
	g.GET("/income-statement", h.incomeStatement)
}

// dates arrive as plain calendar days; full timestamps are also accepted.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (h *Handler) incomeStatement(c echo.Context) error {
	b := response.New(c)

	from, err := parseDate(c.QueryParam("fromDate"))
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid fromDate", errorbank.WithCause(err))).Build()
	}
	to, err := parseDate(c.QueryParam("toDate"))
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid toDate", errorbank.WithCause(err))).Build()
	}

	stmt, err := h.svc.IncomeStatement(c.Request().Context(), from, to, c.QueryParam("serviceOrderStatus"))
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(stmt).Build()
}
