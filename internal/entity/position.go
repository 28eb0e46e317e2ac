package entity

import "github.com/uptrace/bun"

// Position is a job title. Positions are never hard-deleted; IsDeleted and
// IsActive gate visibility on default read paths.
type Position struct {
	bun.BaseModel `bun:"table:positions"`

	ID           int64  `bun:",pk,autoincrement" json:"id"`
	PositionName string `bun:"position_name,unique" json:"positionName"`
	Description  string `bun:"description" json:"description"`
	IsActive     bool   `bun:"is_active" json:"isActive"`
	IsDeleted    bool   `bun:"is_deleted" json:"isDeleted"`
	Timestamps
}
