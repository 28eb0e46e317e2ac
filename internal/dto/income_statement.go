package dto

import "time"

// IncomeStatement is the aggregated profit report for a date range.
type IncomeStatement struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`

	ServiceRevenue float64 `json:"serviceRevenue"`
	PartsSale      float64 `json:"partsSale"`
	TotalRevenue   float64 `json:"totalRevenue"`

	CostOfGoodsSold float64 `json:"costOfGoodsSold"`
	GrossProfit     float64 `json:"grossProfit"`

	LaborCost     float64 `json:"laborCost"`
	OperatingCost float64 `json:"operatingCost"`
	PartsPurchase float64 `json:"partsPurchase"`
	TotalExpenses float64 `json:"totalExpenses"`

	NetProfit         float64 `json:"netProfit"`
	GrossProfitMargin float64 `json:"grossProfitMargin"`
	NetProfitMargin   float64 `json:"netProfitMargin"`
}
