package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// PartGroup is a family of interchangeable parts.
type PartGroup struct {
	bun.BaseModel `bun:"table:part_groups"`

	ID          int64  `bun:",pk,autoincrement" json:"id"`
	GroupName   string `bun:"group_name,unique" json:"groupName"`
	Description string `bun:"description" json:"description"`
	Timestamps
}

// PartGroupCompatibility links a part group to a vehicle model it fits.
type PartGroupCompatibility struct {
	bun.BaseModel `bun:"table:part_group_compatibilities"`

	ID             int64  `bun:",pk,autoincrement" json:"id"`
	PartGroupID    int64  `bun:"part_group_id" json:"partGroupId"`
	VehicleModelID int64  `bun:"vehicle_model_id" json:"vehicleModelId"`
	Notes          string `bun:"notes" json:"notes"`
	Timestamps
}

// Part is a stocked article. UnitPrice is the current sale price; inventory
// cost lives on the batch that delivered the stock.
type Part struct {
	bun.BaseModel `bun:"table:parts"`

	ID          int64   `bun:",pk,autoincrement" json:"id"`
	PartGroupID int64   `bun:"part_group_id" json:"partGroupId"`
	PartName    string  `bun:"part_name" json:"partName"`
	PartNumber  string  `bun:"part_number" json:"partNumber"`
	UnitPrice   float64 `bun:"unit_price" json:"unitPrice"`
	Timestamps
}

// PartInventoryBatch is a received lot of a part. QuantityRemaining is
// decremented as usages are recorded against the batch.
type PartInventoryBatch struct {
	bun.BaseModel `bun:"table:part_inventory_batches"`

	ID                int64      `bun:",pk,autoincrement" json:"id"`
	PartID            int64      `bun:"part_id" json:"partId"`
	BatchNumber       string     `bun:"batch_number,unique" json:"batchNumber"`
	QuantityReceived  int        `bun:"quantity_received" json:"quantityReceived"`
	QuantityRemaining int        `bun:"quantity_remaining" json:"quantityRemaining"`
	UnitCost          float64    `bun:"unit_cost" json:"unitCost"`
	SupplierName      string     `bun:"supplier_name" json:"supplierName"`
	ReceivedAt        time.Time  `bun:"received_at,nullzero" json:"receivedAt"`
	ExpiryDate        *time.Time `bun:"expiry_date,nullzero" json:"expiryDate,omitempty"`
	Timestamps
}

// PartBatchUsage is a consumption event against a batch on behalf of a
// service order. UnitCost and UnitPrice are snapshots taken when the usage
// is recorded so later batch or part edits do not rewrite history.
type PartBatchUsage struct {
	bun.BaseModel `bun:"table:part_batch_usages"`

	ID                   int64     `bun:",pk,autoincrement" json:"id"`
	PartInventoryBatchID int64     `bun:"part_inventory_batch_id" json:"partInventoryBatchId"`
	ServiceOrderID       int64     `bun:"service_order_id" json:"serviceOrderId"`
	QuantityUsed         int       `bun:"quantity_used" json:"quantityUsed"`
	UnitCost             float64   `bun:"unit_cost" json:"unitCost"`
	UnitPrice            float64   `bun:"unit_price" json:"unitPrice"`
	UsedAt               time.Time `bun:"used_at,nullzero" json:"usedAt"`
	Timestamps
}
