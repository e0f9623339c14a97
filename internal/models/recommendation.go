package models

// CropRecommendationInput carries the soil properties a farmer enters.
type CropRecommendationInput struct {
	NitrogenLevel   float64 `json:"nitrogenLevel"`
	PhosphorusLevel float64 `json:"phosphorusLevel"`
	PotassiumLevel  float64 `json:"potassiumLevel"`
	MoistureLevel   float64 `json:"moistureLevel"`
	Temperature     float64 `json:"temperature"`
	Rainfall        float64 `json:"rainfall"`
}

func (in *CropRecommendationInput) Validate() []FieldError {
	var errs []FieldError
	for _, c := range []struct {
		field string
		value float64
		msg   string
	}{
		{"nitrogenLevel", in.NitrogenLevel, "Nitrogen level cannot be negative."},
		{"phosphorusLevel", in.PhosphorusLevel, "Phosphorus level cannot be negative."},
		{"potassiumLevel", in.PotassiumLevel, "Potassium level cannot be negative."},
		{"moistureLevel", in.MoistureLevel, "Moisture level cannot be negative."},
		{"rainfall", in.Rainfall, "Rainfall cannot be negative."},
	} {
		if c.value < 0 {
			errs = append(errs, FieldError{Field: c.field, Message: c.msg})
		}
	}
	return errs
}

type CropRecommendationOutput struct {
	Crops []RecommendedCrop `json:"crops"`
}

type RecommendedCrop struct {
	CropName         string  `json:"cropName"`
	SuitabilityScore float64 `json:"suitabilityScore"`
	Justification    string  `json:"justification"`
}
