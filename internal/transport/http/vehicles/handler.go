package vehicles

import (
	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/internal/entity"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	vehiclesvc "github.com/gearbox-hq/gearbox/internal/service/vehicles"
	"github.com/gearbox-hq/gearbox/internal/transport/http/resource"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

type brandPayload struct {
	BrandName *string `json:"brandName"`
	Country   *string `json:"country"`
}

type modelPayload struct {
	VehicleBrandID *int64  `json:"vehicleBrandId"`
	ModelName      *string `json:"modelName"`
	YearFrom       *int    `json:"yearFrom"`
	YearTo         *int    `json:"yearTo"`
}

// Register mounts /api/VehicleBrands and /api/VehicleModels.
func Register(api *httpserver.API, svc *vehiclesvc.Service) {
	resource.Register(api.Group, "/VehicleBrands", resource.Endpoint[entity.VehicleBrand, *entity.VehicleBrand]{
		Service:        svc.Brands,
		Bind:           bindBrand,
		Apply:          applyBrand,
		CreatedMessage: "vehicle brand created",
		UpdatedMessage: "vehicle brand updated",
		DeletedMessage: "vehicle brand deleted",
	})

	resource.Register(api.Group, "/VehicleModels", resource.Endpoint[entity.VehicleModel, *entity.VehicleModel]{
		Service:        svc.Models,
		Bind:           bindModel,
		Apply:          applyModel,
		Filters:        resource.QueryFilters(resource.FilterParam{Param: "brandId", Column: "vehicle_brand_id"}),
		CreatedMessage: "vehicle model created",
		UpdatedMessage: "vehicle model updated",
		DeletedMessage: "vehicle model deleted",
	})
}

func bindBrand(c echo.Context) (*entity.VehicleBrand, error) {
	var p brandPayload
	if err := c.Bind(&p); err != nil {
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.BrandName == nil || *p.BrandName == "" {
		return nil, errorbank.BadRequest("brandName is required")
	}

	brand := &entity.VehicleBrand{BrandName: *p.BrandName}
	if p.Country != nil {
		brand.Country = *p.Country
	}
	return brand, nil
}

func applyBrand(c echo.Context, existing *entity.VehicleBrand) error {
	var p brandPayload
	if err := c.Bind(&p); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.BrandName != nil {
		existing.BrandName = *p.BrandName
	}
	if p.Country != nil {
		existing.Country = *p.Country
	}
	return nil
}

func bindModel(c echo.Context) (*entity.VehicleModel, error) {
	var p modelPayload
	if err := c.Bind(&p); err != nil {
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.VehicleBrandID == nil || *p.VehicleBrandID <= 0 {
		return nil, errorbank.BadRequest("vehicleBrandId is required")
	}
	if p.ModelName == nil || *p.ModelName == "" {
		return nil, errorbank.BadRequest("modelName is required")
	}

	model := &entity.VehicleModel{
		VehicleBrandID: *p.VehicleBrandID,
		ModelName:      *p.ModelName,
	}
	if p.YearFrom != nil {
		model.YearFrom = *p.YearFrom
	}
	if p.YearTo != nil {
		model.YearTo = *p.YearTo
	}
	return model, nil
}

func applyModel(c echo.Context, existing *entity.VehicleModel) error {
	var p modelPayload
	if err := c.Bind(&p); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.VehicleBrandID != nil && *p.VehicleBrandID > 0 {
		existing.VehicleBrandID = *p.VehicleBrandID
	}
	if p.ModelName != nil {
		existing.ModelName = *p.ModelName
	}
	if p.YearFrom != nil {
		existing.YearFrom = *p.YearFrom
	}
	if p.YearTo != nil {
		existing.YearTo = *p.YearTo
	}
	return nil
}
