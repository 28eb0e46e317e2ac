package entity

import "github.com/uptrace/bun"

// LaborCategory groups labor items (e.g. engine, bodywork, electrics).
type LaborCategory struct {
	bun.BaseModel `bun:"table:labor_categories"`

	ID           int64  `bun:",pk,autoincrement" json:"id"`
	CategoryName string `bun:"category_name,unique" json:"categoryName"`
	Description  string `bun:"description" json:"description"`
	Timestamps
}

// LaborItem is a billable unit of work within a category. StandardRate is
// the hourly rate billed to the customer; CostRate is the internal wage cost
// used on the expense side of the income statement.
type LaborItem struct {
	bun.BaseModel `bun:"table:labor_items"`

	ID              int64   `bun:",pk,autoincrement" json:"id"`
	LaborCategoryID int64   `bun:"labor_category_id" json:"laborCategoryId"`
	ItemName        string  `bun:"item_name" json:"itemName"`
	Description     string  `bun:"description" json:"description"`
	StandardHours   float64 `bun:"standard_hours" json:"standardHours"`
	StandardRate    float64 `bun:"standard_rate" json:"standardRate"`
	CostRate        float64 `bun:"cost_rate" json:"costRate"`
	Timestamps
}
