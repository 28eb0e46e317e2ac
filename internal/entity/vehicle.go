package entity

import "github.com/uptrace/bun"

// VehicleBrand is a manufacturer (Toyota, Ford, ...).
type VehicleBrand struct {
	bun.BaseModel `bun:"table:vehicle_brands"`

	ID        int64  `bun:",pk,autoincrement" json:"id"`
	BrandName string `bun:"brand_name,unique" json:"brandName"`
	Country   string `bun:"country" json:"country"`
	Timestamps
}

// VehicleModel belongs to a brand and spans a model-year range.
type VehicleModel struct {
	bun.BaseModel `bun:"table:vehicle_models"`

	ID             int64  `bun:",pk,autoincrement" json:"id"`
	VehicleBrandID int64  `bun:"vehicle_brand_id" json:"vehicleBrandId"`
	ModelName      string `bun:"model_name" json:"modelName"`
	YearFrom       int    `bun:"year_from" json:"yearFrom"`
	YearTo         int    `bun:"year_to" json:"yearTo"`
	Timestamps
}
