package expenses

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/internal/entity"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	expensessvc "github.com/gearbox-hq/gearbox/internal/service/expenses"
	"github.com/gearbox-hq/gearbox/internal/transport/http/resource"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

type expensePayload struct {
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	Amount      *float64   `json:"amount"`
	IncurredAt  *time.Time `json:"incurredAt"`
}

// Register mounts /api/OperatingExpenses.
func Register(api *httpserver.API, svc *expensessvc.Service) {
	resource.Register(api.Group, "/OperatingExpenses", resource.Endpoint[entity.OperatingExpense, *entity.OperatingExpense]{
		Service:        svc.Expenses,
		Bind:           bindExpense,
		Apply:          applyExpense,
		CreatedMessage: "operating expense created",
		UpdatedMessage: "operating expense updated",
		DeletedMessage: "operating expense deleted",
	})
}

func bindExpense(c echo.Context) (*entity.OperatingExpense, error) {
	var p expensePayload
	if err := c.Bind(&p); err != nil {
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.Category == nil || *p.Category == "" {
		return nil, errorbank.BadRequest("category is required")
	}
	if p.Amount == nil {
		return nil, errorbank.BadRequest("amount is required")
	}
	if *p.Amount < 0 {
		return nil, errorbank.BadRequest("amount must not be negative")
	}

	exp := &entity.OperatingExpense{Category: *p.Category, Amount: *p.Amount}
	if p.Description != nil {
		exp.Description = *p.Description
	}
	if p.IncurredAt != nil {
		exp.IncurredAt = *p.IncurredAt
	} else {
		exp.IncurredAt = time.Now().UTC()
	}
	return exp, nil
}

func applyExpense(c echo.Context, existing *entity.OperatingExpense) error {
	var p expensePayload
	if err := c.Bind(&p); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.Category != nil {
		existing.Category = *p.Category
	}
	if p.Description != nil {
		existing.Description = *p.Description
	}
	if p.Amount != nil {
		if *p.Amount < 0 {
			return errorbank.BadRequest("amount must not be negative")
		}
		existing.Amount = *p.Amount
	}
	if p.IncurredAt != nil {
		existing.IncurredAt = *p.IncurredAt
	}
	return nil
}
