package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Service order statuses.
const (
	ServiceStatusOpen       = "OPEN"
	ServiceStatusInProgress = "IN_PROGRESS"
	ServiceStatusCompleted  = "COMPLETED"
	ServiceStatusClosed     = "CLOSED"
	ServiceStatusCanceled   = "CANCELED"
)

// Labor line statuses.
const (
	LaborStatusPending    = "PENDING"
	LaborStatusInProgress = "IN_PROGRESS"
	LaborStatusDone       = "DONE"
)

// ServiceType is a lookup for the kind of visit (maintenance, repair, ...).
type ServiceType struct {
	bun.BaseModel `bun:"table:service_types"`

	ID          int64   `bun:",pk,autoincrement" json:"id"`
	TypeName    string  `bun:"type_name,unique" json:"typeName"`
	Description string  `bun:"description" json:"description"`
	BaseRate    float64 `bun:"base_rate" json:"baseRate"`
	Timestamps
}

// ServiceOrder is a workshop job for a customer vehicle.
type ServiceOrder struct {
	bun.BaseModel `bun:"table:service_orders"`

	ID             int64      `bun:",pk,autoincrement" json:"id"`
	OrderNumber    string     `bun:"order_number,unique" json:"orderNumber"`
	VehicleModelID int64      `bun:"vehicle_model_id" json:"vehicleModelId"`
	CustomerName   string     `bun:"customer_name" json:"customerName"`
	Status         string     `bun:"status" json:"status"`
	OpenedAt       time.Time  `bun:"opened_at,nullzero" json:"openedAt"`
	CompletedAt    *time.Time `bun:"completed_at,nullzero" json:"completedAt,omitempty"`
	Timestamps
}

// ServiceOrderLabor is a labor line on a service order. Description,
// HourlyRate and CostRate are snapshots of the labor item at creation time;
// TotalCost is always Hours times HourlyRate.
type ServiceOrderLabor struct {
	bun.BaseModel `bun:"table:service_order_labors"`

	ID             int64   `bun:",pk,autoincrement" json:"id"`
	ServiceOrderID int64   `bun:"service_order_id" json:"serviceOrderId"`
	LaborItemID    int64   `bun:"labor_item_id" json:"laborItemId"`
	Description    string  `bun:"description" json:"description"`
	Status         string  `bun:"status" json:"status"`
	Hours          float64 `bun:"hours" json:"hours"`
	HourlyRate     float64 `bun:"hourly_rate" json:"hourlyRate"`
	CostRate       float64 `bun:"cost_rate" json:"costRate"`
	TotalCost      float64 `bun:"total_cost" json:"totalCost"`
	Timestamps
}
