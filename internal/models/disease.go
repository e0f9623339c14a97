package models

import "strings"

// DiseaseDetectionInput holds the crop photo as
// "data:<mimetype>;base64,<encoded_data>".
type DiseaseDetectionInput struct {
	PhotoDataURI string `json:"photoDataUri"`
}

func (in *DiseaseDetectionInput) SetDefaults() {
	in.PhotoDataURI = strings.TrimSpace(in.PhotoDataURI)
}

func (in *DiseaseDetectionInput) Validate() []FieldError {
	var errs []FieldError
	errs = requireText(errs, "photoDataUri", in.PhotoDataURI, "Please select an image file.")
	if len(errs) == 0 && !strings.HasPrefix(in.PhotoDataURI, "data:image/") {
		errs = append(errs, FieldError{Field: "photoDataUri", Message: "Please select an image file."})
	}
	return errs
}

type DiseaseDetectionOutput struct {
	DiseaseIdentification DiseaseIdentification `json:"diseaseIdentification"`
}

type DiseaseIdentification struct {
	IsHealthy   bool    `json:"isHealthy"`
	DiseaseName string  `json:"diseaseName"`
	Confidence  float64 `json:"confidence"`
	Suggestions string  `json:"suggestions"`
}
