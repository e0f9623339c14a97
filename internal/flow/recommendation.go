package flow

import (
	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/schema"
)

const CropRecommendationName = "crop-recommendation"

func cropRecommendationInput() *schema.Schema {
	level := func(desc, msg string) *schema.Schema {
		return schema.Number(desc).Min(0).Msg(msg)
	}
	return schema.Object("Soil properties measured on the farmer's field.",
		schema.P("nitrogenLevel", level("Nitrogen level in the soil.", "Nitrogen level cannot be negative.")),
		schema.P("phosphorusLevel", level("Phosphorus level in the soil.", "Phosphorus level cannot be negative.")),
		schema.P("potassiumLevel", level("Potassium level in the soil.", "Potassium level cannot be negative.")),
		schema.P("moistureLevel", level("Moisture level of the soil.", "Moisture level cannot be negative.")),
		schema.P("temperature", schema.Number("Temperature in Celsius.")),
		schema.P("rainfall", level("Rainfall in millimetres.", "Rainfall cannot be negative.")),
	)
}

func cropRecommendationOutput() *schema.Schema {
	return schema.Object("Recommended crops.",
		schema.P("crops", schema.Array("Crops suited to the soil, best first.", schema.Object("A recommended crop.",
			schema.P("cropName", schema.String("Name of the crop.")),
			schema.P("suitabilityScore", schema.Number("Suitability score from 0 to 100.").Range(0, 100)),
			schema.P("justification", schema.String("Why the crop suits these soil properties.")),
		))),
	)
}

// CropRecommendation suggests crops for measured soil properties.
func CropRecommendation() *Flow {
	return Define(Definition[models.CropRecommendationInput, models.CropRecommendationOutput]{
		Name:        CropRecommendationName,
		Type:        models.ResultRecommendation,
		Title:       "Crop Recommendation",
		Description: "Find the crops best suited to your soil's nutrients, moisture, temperature and rainfall.",
		Input:       cropRecommendationInput(),
		Output:      cropRecommendationOutput(),
		PostProcess: func(_ *Env, _ *models.CropRecommendationInput, out *models.CropRecommendationOutput) {
			if out.Crops == nil {
				out.Crops = []models.RecommendedCrop{}
			}
			for i := range out.Crops {
				out.Crops[i].SuitabilityScore = clamp(out.Crops[i].SuitabilityScore, 0, 100)
			}
		},
	})
}
