package flow

import (
	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/schema"
)

const FertilizerSuggestionName = "fertilizer-suggestion"

// FertilizerSuggestion recommends a fertilizer and application rate.
func FertilizerSuggestion() *Flow {
	return Define(Definition[models.FertilizerInput, models.FertilizerOutput]{
		Name:        FertilizerSuggestionName,
		Type:        models.ResultSuggestion,
		Title:       "Fertilizer Suggestion",
		Description: "Get a fertilizer type and quantity per hectare for your soil and crop.",
		Input: schema.Object("Soil conditions and the crop to fertilize.",
			schema.P("soilType", requiredText("Soil type, e.g. Loamy, Clay, Sandy.", "Soil type is required.")),
			schema.P("pH", schema.Number("Soil pH from 0 to 14.").Range(0, 14).Msg("pH must be between 0 and 14.")),
			schema.P("temperature", schema.Number("Soil temperature in Celsius.")),
			schema.P("crop", requiredText("Crop to be fertilized.", "Crop name is required.")),
		),
		Output: schema.Object("Fertilizer recommendation.",
			schema.P("fertilizerType", schema.String("Recommended fertilizer, e.g. Urea or NPK 10-10-10.")),
			schema.P("quantityKgPerHectare", schema.Number("Application quantity in kg per hectare.").Min(0)),
			schema.P("justification", schema.String("Why this fertilizer and quantity suit the soil and crop.")),
		),
		FreeText: []string{"soilType", "crop"},
		PostProcess: func(_ *Env, _ *models.FertilizerInput, out *models.FertilizerOutput) {
			if out.QuantityKgPerHectare < 0 {
				out.QuantityKgPerHectare = 0
			}
		},
	})
}
