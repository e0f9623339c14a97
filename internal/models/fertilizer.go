package models

import "strings"

type FertilizerInput struct {
	SoilType    string  `json:"soilType"`
	PH          float64 `json:"pH"`
	Temperature float64 `json:"temperature"`
	Crop        string  `json:"crop"`
}

func (in *FertilizerInput) SetDefaults() {
	in.SoilType = strings.TrimSpace(in.SoilType)
	in.Crop = strings.TrimSpace(in.Crop)
}

func (in *FertilizerInput) Validate() []FieldError {
	var errs []FieldError
	errs = requireText(errs, "soilType", in.SoilType, "Soil type is required.")
	if in.PH < 0 || in.PH > 14 {
		errs = append(errs, FieldError{Field: "pH", Message: "pH must be between 0 and 14."})
	}
	errs = requireText(errs, "crop", in.Crop, "Crop name is required.")
	return errs
}

type FertilizerOutput struct {
	FertilizerType       string  `json:"fertilizerType"`
	QuantityKgPerHectare float64 `json:"quantityKgPerHectare"`
	Justification        string  `json:"justification"`
}
