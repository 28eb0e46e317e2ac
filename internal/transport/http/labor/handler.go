package labor

import (
	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/internal/entity"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	laborsvc "github.com/gearbox-hq/gearbox/internal/service/labor"
	"github.com/gearbox-hq/gearbox/internal/transport/http/resource"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

type categoryPayload struct {
	CategoryName *string `json:"categoryName"`
	Description  *string `json:"description"`
}

type itemPayload struct {
	LaborCategoryID *int64   `json:"laborCategoryId"`
	ItemName        *string  `json:"itemName"`
	Description     *string  `json:"description"`
	StandardHours   *float64 `json:"standardHours"`
	StandardRate    *float64 `json:"standardRate"`
	CostRate        *float64 `json:"costRate"`
}

// Register mounts /api/LaborCategories and /api/LaborItems.
func Register(api *httpserver.API, svc *laborsvc.Service) {
	resource.Register(api.Group, "/LaborCategories", resource.Endpoint[entity.LaborCategory, *entity.LaborCategory]{
		Service:        svc.Categories,
		Bind:           bindCategory,
		Apply:          applyCategory,
		CreatedMessage: "labor category created",
		UpdatedMessage: "labor category updated",
		DeletedMessage: "labor category deleted",
	})

	resource.Register(api.Group, "/LaborItems", resource.Endpoint[entity.LaborItem, *entity.LaborItem]{
		Service:        svc.Items,
		Bind:           bindItem,
		Apply:          applyItem,
		Filters:        resource.QueryFilters(resource.FilterParam{Param: "categoryId", Column: "labor_category_id"}),
		CreatedMessage: "labor item created",
		UpdatedMessage: "labor item updated",
		DeletedMessage: "labor item deleted",
	})
}

func bindCategory(c echo.Context) (*entity.LaborCategory, error) {
	var p categoryPayload
	if err := c.Bind(&p); err != nil {
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.CategoryName == nil || *p.CategoryName == "" {
		return nil, errorbank.BadRequest("categoryName is required")
	}

	cat := &entity.LaborCategory{CategoryName: *p.CategoryName}
	if p.Description != nil {
		cat.Description = *p.Description
	}
	return cat, nil
}

func applyCategory(c echo.Context, existing *entity.LaborCategory) error {
	var p categoryPayload
	if err := c.Bind(&p); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.CategoryName != nil {
		existing.CategoryName = *p.CategoryName
	}
	if p.Description != nil {
		existing.Description = *p.Description
	}
	return nil
}

func bindItem(c echo.Context) (*entity.LaborItem, error) {
	var p itemPayload
	if err := c.Bind(&p); err != nil {
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.LaborCategoryID == nil || *p.LaborCategoryID <= 0 {
		return nil, errorbank.BadRequest("laborCategoryId is required")
	}
	if p.ItemName == nil || *p.ItemName == "" {
		return nil, errorbank.BadRequest("itemName is required")
	}

	item := &entity.LaborItem{
		LaborCategoryID: *p.LaborCategoryID,
		ItemName:        *p.ItemName,
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.StandardHours != nil {
		item.StandardHours = *p.StandardHours
	}
	if p.StandardRate != nil {
		item.StandardRate = *p.StandardRate
	}
	if p.CostRate != nil {
		item.CostRate = *p.CostRate
	}
	return item, nil
}

// applyItem copies the mutable fields only; the owning category is part of
// the allow-list but absent fields are always preserved.
func applyItem(c echo.Context, existing *entity.LaborItem) error {
	var p itemPayload
	if err := c.Bind(&p); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.LaborCategoryID != nil && *p.LaborCategoryID > 0 {
		existing.LaborCategoryID = *p.LaborCategoryID
	}
	if p.ItemName != nil {
		existing.ItemName = *p.ItemName
	}
	if p.Description != nil {
		existing.Description = *p.Description
	}
	if p.StandardHours != nil {
		existing.StandardHours = *p.StandardHours
	}
	if p.StandardRate != nil {
		existing.StandardRate = *p.StandardRate
	}
	if p.CostRate != nil {
		existing.CostRate = *p.CostRate
	}
	return nil
}
