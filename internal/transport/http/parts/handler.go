package parts

import (
	"github.com/labstack/echo/v4"

	"github.com/gearbox-hq/gearbox/internal/entity"
	httpserver "github.com/gearbox-hq/gearbox/internal/server/http"
	partsvc "github.com/gearbox-hq/gearbox/internal/service/parts"
	"github.com/gearbox-hq/gearbox/internal/transport/http/resource"
	"github.com/gearbox-hq/gearbox/pkg/errorbank"
)

type groupPayload struct {
	GroupName   *string `json:"groupName"`
	Description *string `json:"description"`
}

type compatibilityPayload struct {
	PartGroupID    *int64  `json:"partGroupId"`
	VehicleModelID *int64  `json:"vehicleModelId"`
	Notes          *string `json:"notes"`
}

type partPayload struct {
	PartGroupID *int64   `json:"partGroupId"`
	PartName    *string  `json:"partName"`
	PartNumber  *string  `json:"partNumber"`
	UnitPrice   *float64 `json:"unitPrice"`
}

// Register mounts /api/PartGroups, /api/PartGroupCompatibilities and /api/Parts.
func Register(api *httpserver.API, svc *partsvc.Service) {
	resource.Register(api.Group, "/PartGroups", resource.Endpoint[entity.PartGroup, *entity.PartGroup]{
		Service:        svc.Groups,
		Bind:           bindGroup,
		Apply:          applyGroup,
		CreatedMessage: "part group created",
		UpdatedMessage: "part group updated",
		DeletedMessage: "part group deleted",
	})

	resource.Register(api.Group, "/PartGroupCompatibilities", resource.Endpoint[entity.PartGroupCompatibility, *entity.PartGroupCompatibility]{
		Service: svc.Compatibilities,
		Bind:    bindCompatibility,
		Apply:   applyCompatibility,
		Filters: resource.QueryFilters(
			resource.FilterParam{Param: "partGroupId", Column: "part_group_id"},
			resource.FilterParam{Param: "vehicleModelId", Column: "vehicle_model_id"},
		),
		CreatedMessage: "part group compatibility created",
		UpdatedMessage: "part group compatibility updated",
		DeletedMessage: "part group compatibility deleted",
	})

	resource.Register(api.Group, "/Parts", resource.Endpoint[entity.Part, *entity.Part]{
		Service:        svc.Parts,
		Bind:           bindPart,
		Apply:          applyPart,
		Filters:        resource.QueryFilters(resource.FilterParam{Param: "partGroupId", Column: "part_group_id"}),
		CreatedMessage: "part created",
		UpdatedMessage: "part updated",
		DeletedMessage: "part deleted",
	})
}

func bindGroup(c echo.Context) (*entity.PartGroup, error) {
	var p groupPayload
	if err := c.Bind(&p); err != nil {
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.GroupName == nil || *p.GroupName == "" {
		return nil, errorbank.BadRequest("groupName is required")
	}

	group := &entity.PartGroup{GroupName: *p.GroupName}
	if p.Description != nil {
		group.Description = *p.Description
	}
	return group, nil
}

func applyGroup(c echo.Context, existing *entity.PartGroup) error {
	var p groupPayload
	if err := c.Bind(&p); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.GroupName != nil {
		existing.GroupName = *p.GroupName
	}
	if p.Description != nil {
		existing.Description = *p.Description
	}
	return nil
}

func bindCompatibility(c echo.Context) (*entity.PartGroupCompatibility, error) {
	var p compatibilityPayload
	if err := c.Bind(&p); err != nil {
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.PartGroupID == nil || *p.PartGroupID <= 0 {
		return nil, errorbank.BadRequest("partGroupId is required")
	}
	if p.VehicleModelID == nil || *p.VehicleModelID <= 0 {
		return nil, errorbank.BadRequest("vehicleModelId is required")
	}

	compat := &entity.PartGroupCompatibility{
		PartGroupID:    *p.PartGroupID,
		VehicleModelID: *p.VehicleModelID,
	}
	if p.Notes != nil {
		compat.Notes = *p.Notes
	}
	return compat, nil
}

// applyCompatibility allows the notes to change; the link itself is
// immutable once created, delete and recreate to repoint it.
func applyCompatibility(c echo.Context, existing *entity.PartGroupCompatibility) error {
	var p compatibilityPayload
	if err := c.Bind(&p); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.Notes != nil {
		existing.Notes = *p.Notes
	}
	return nil
}

func bindPart(c echo.Context) (*entity.Part, error) {
	var p partPayload
	if err := c.Bind(&p); err != nil {
		return nil, errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.PartGroupID == nil || *p.PartGroupID <= 0 {
		return nil, errorbank.BadRequest("partGroupId is required")
	}
	if p.PartName == nil || *p.PartName == "" {
		return nil, errorbank.BadRequest("partName is required")
	}

	part := &entity.Part{
		PartGroupID: *p.PartGroupID,
		PartName:    *p.PartName,
	}
	if p.PartNumber != nil {
		part.PartNumber = *p.PartNumber
	}
	if p.UnitPrice != nil {
		part.UnitPrice = *p.UnitPrice
	}
	return part, nil
}

func applyPart(c echo.Context, existing *entity.Part) error {
	var p partPayload
	if err := c.Bind(&p); err != nil {
		return errorbank.BadRequest("invalid payload", errorbank.WithCause(err))
	}
	if p.PartGroupID != nil && *p.PartGroupID > 0 {
		existing.PartGroupID = *p.PartGroupID
	}
	if p.PartName != nil {
		existing.PartName = *p.PartName
	}
	if p.PartNumber != nil {
		existing.PartNumber = *p.PartNumber
	}
	if p.UnitPrice != nil {
		existing.UnitPrice = *p.UnitPrice
	}
	return nil
}
