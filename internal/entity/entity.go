package entity

import "time"

// Timestamps is embedded by every persisted entity. CreatedAt is assigned
// exactly once at creation and never overwritten; UpdatedAt is refreshed on
// every mutation. Both are server-assigned, never taken from a request body.
type Timestamps struct {
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero" json:"updatedAt"`
}

// StampCreated marks the entity as freshly created.
func (t *Timestamps) StampCreated(now time.Time) {
	t.CreatedAt = now
	t.UpdatedAt = now
}

// StampUpdated marks the entity as mutated.
func (t *Timestamps) StampUpdated(now time.Time) {
	t.UpdatedAt = now
}

// Auditable is satisfied by every entity embedding Timestamps.
type Auditable interface {
	StampCreated(time.Time)
	StampUpdated(time.Time)
}
