package inventory

import "time"

// Event types emitted on the inventory topic.
const (
	EventBatchReceived = "inventory.batch.received"
	EventBatchConsumed = "inventory.batch.consumed"
)

// BatchEvent is published whenever stock enters or leaves a batch.
type BatchEvent struct {
	EventID           string    `json:"event_id"`
	Type              string    `json:"type"`
	BatchID           int64     `json:"batch_id"`
	BatchNumber       string    `json:"batch_number"`
	PartID            int64     `json:"part_id"`
	Quantity          int       `json:"quantity"`
	QuantityRemaining int       `json:"quantity_remaining"`
	LowStock          bool      `json:"low_stock"`
	OccurredAt        time.Time `json:"occurred_at"`
}
