package models

import "strings"

type MarketPriceInput struct {
	CropName string `json:"cropName"`
	Location string `json:"location"`
}

func (in *MarketPriceInput) SetDefaults() {
	in.CropName = strings.TrimSpace(in.CropName)
	in.Location = strings.TrimSpace(in.Location)
}

func (in *MarketPriceInput) Validate() []FieldError {
	var errs []FieldError
	errs = requireText(errs, "cropName", in.CropName, "Crop name is required.")
	errs = requireText(errs, "location", in.Location, "Location is required (e.g., city, region).")
	return errs
}

type MarketPriceOutput struct {
	MarketData MarketData `json:"marketData"`
}

type MarketData struct {
	CropName string `json:"cropName"`
	Location string `json:"location"`
	Price    string `json:"price"`
	Unit     string `json:"unit"`
	Date     string `json:"date"`
	Trend    string `json:"trend,omitempty"`
	Analysis string `json:"analysis"`
}

const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)
