package models

import "strings"

type GovernmentSchemesInput struct {
	Location       string `json:"location"`
	CropType       string `json:"cropType,omitempty"`
	FarmerCategory string `json:"farmerCategory,omitempty"`
}

func (in *GovernmentSchemesInput) SetDefaults() {
	in.Location = strings.TrimSpace(in.Location)
	in.CropType = strings.TrimSpace(in.CropType)
	in.FarmerCategory = strings.TrimSpace(in.FarmerCategory)
}

// Validate accepts a blank location; the flow answers it with no schemes.
func (in *GovernmentSchemesInput) Validate() []FieldError {
	return nil
}

type GovernmentSchemesOutput struct {
	Schemes []Scheme `json:"schemes"`
}

type Scheme struct {
	SchemeName  string `json:"schemeName"`
	Description string `json:"description"`
	Eligibility string `json:"eligibility"`
	HowToApply  string `json:"howToApply"`
	RelevantFor string `json:"relevantFor,omitempty"`
}
