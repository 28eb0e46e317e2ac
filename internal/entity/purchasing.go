package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Purchase order statuses.
const (
	PurchaseStatusDraft    = "DRAFT"
	PurchaseStatusOrdered  = "ORDERED"
	PurchaseStatusReceived = "RECEIVED"
	PurchaseStatusCanceled = "CANCELED"
)

// PurchaseOrder is an order placed with a parts supplier.
type PurchaseOrder struct {
	bun.BaseModel `bun:"table:purchase_orders"`

	ID           int64     `bun:",pk,autoincrement" json:"id"`
	OrderNumber  string    `bun:"order_number,unique" json:"orderNumber"`
	SupplierName string    `bun:"supplier_name" json:"supplierName"`
	Status       string    `bun:"status" json:"status"`
	OrderedAt    time.Time `bun:"ordered_at,nullzero" json:"orderedAt"`
	Timestamps
}

// PurchaseOrderItem is a line on a purchase order. PartName is copied from
// the referenced Part when the line is created; renaming the part later must
// not rewrite historical orders.
type PurchaseOrderItem struct {
	bun.BaseModel `bun:"table:purchase_order_items"`

	ID              int64   `bun:",pk,autoincrement" json:"id"`
	PurchaseOrderID int64   `bun:"purchase_order_id" json:"purchaseOrderId"`
	PartID          int64   `bun:"part_id" json:"partId"`
	PartName        string  `bun:"part_name" json:"partName"`
	Quantity        int     `bun:"quantity" json:"quantity"`
	UnitCost        float64 `bun:"unit_cost" json:"unitCost"`
	TotalCost       float64 `bun:"total_cost" json:"totalCost"`
	Timestamps
}
