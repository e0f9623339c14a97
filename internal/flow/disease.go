package flow

import (
	"strings"

	"github.com/agrimitra/agrimitra/internal/llm"
	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/schema"
)

const DiseaseDetectionName = "disease-detection"

// DiseaseDetection diagnoses a crop photo.
func DiseaseDetection() *Flow {
	return Define(Definition[models.DiseaseDetectionInput, models.DiseaseDetectionOutput]{
		Name:        DiseaseDetectionName,
		Type:        models.ResultDetection,
		Title:       "Disease Detection",
		Description: "Upload a photo of your crop to check it for disease and get treatment advice.",
		Input: schema.Object("A photo of the crop.",
			schema.P("photoDataUri", requiredText(
				`Photo of the crop as a data URI: "data:<mimetype>;base64,<encoded_data>".`,
				"Please select an image file.",
			)),
		),
		Output: schema.Object("Diagnosis of the photo.",
			schema.P("diseaseIdentification", schema.Object("Disease identification.",
				schema.P("isHealthy", schema.Boolean("Whether the plant appears healthy.")),
				schema.P("diseaseName", schema.String("Name of the disease, empty when healthy.")),
				schema.P("confidence", schema.Number("Confidence from 0 to 1.").Range(0, 1)),
				schema.P("suggestions", schema.String("Treatment or prevention advice, or a health assessment.")),
			)),
		),
		Media: func(in *models.DiseaseDetectionInput) ([]llm.Media, error) {
			m, err := llm.ParseDataURI(in.PhotoDataURI)
			if err != nil || !strings.HasPrefix(m.MIMEType, "image/") {
				return nil, invalid(models.FieldError{Field: "photoDataUri", Message: "Please select an image file."})
			}
			return []llm.Media{m}, nil
		},
		PostProcess: func(_ *Env, _ *models.DiseaseDetectionInput, out *models.DiseaseDetectionOutput) {
			d := &out.DiseaseIdentification
			d.Confidence = clamp(d.Confidence, 0, 1)
			d.DiseaseName = strings.TrimSpace(d.DiseaseName)
		},
	})
}
