package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// OperatingExpense is a recurring cost of running the workshop (rent,
// utilities, insurance). Feeds the expense side of the income statement.
type OperatingExpense struct {
	bun.BaseModel `bun:"table:operating_expenses"`

	ID          int64     `bun:",pk,autoincrement" json:"id"`
	Category    string    `bun:"category" json:"category"`
	Description string    `bun:"description" json:"description"`
	Amount      float64   `bun:"amount" json:"amount"`
	IncurredAt  time.Time `bun:"incurred_at,nullzero" json:"incurredAt"`
	Timestamps
}
