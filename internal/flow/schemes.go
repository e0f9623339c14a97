package flow

import (
	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/schema"
)

const GovernmentSchemesName = "government-schemes"

func noSchemes(*models.GovernmentSchemesInput) *models.GovernmentSchemesOutput {
	return &models.GovernmentSchemesOutput{Schemes: []models.Scheme{}}
}

// GovernmentSchemes lists support programmes for a farmer's state or region.
func GovernmentSchemes() *Flow {
	return Define(Definition[models.GovernmentSchemesInput, models.GovernmentSchemesOutput]{
		Name:        GovernmentSchemesName,
		Type:        models.ResultSchemes,
		Title:       "Government Schemes",
		Description: "Discover subsidies, insurance and MSP programmes available where you farm.",
		Input: schema.Object("Where the farmer is and what they grow.",
			schema.P("location", schema.String("State or region in India.").MissingMsg("Location (State/Region) is required.")),
			schema.P("cropType", schema.String("Crop of interest.").Optional()),
			schema.P("farmerCategory", schema.String("Farmer category, e.g. Small, Marginal, Tenant.").Optional()),
		),
		Output: schema.Object("Relevant government programmes.",
			schema.P("schemes", schema.Array("Programmes, most relevant first.", schema.Object("A programme.",
				schema.P("schemeName", schema.String("Official name.")),
				schema.P("description", schema.String("Objectives and benefits.")),
				schema.P("eligibility", schema.String("Who qualifies.")),
				schema.P("howToApply", schema.String("How and where to apply.")),
				schema.P("relevantFor", schema.String("Why it matters for this farmer.").Optional()),
			))),
		),
		FreeText: []string{"location", "cropType", "farmerCategory"},
		Shortcut: func(in *models.GovernmentSchemesInput) (*models.GovernmentSchemesOutput, bool) {
			if in.Location == "" {
				return noSchemes(in), true
			}
			return nil, false
		},
		Fallback: noSchemes,
		PostProcess: func(_ *Env, _ *models.GovernmentSchemesInput, out *models.GovernmentSchemesOutput) {
			if out.Schemes == nil {
				out.Schemes = []models.Scheme{}
			}
		},
	})
}
