package models

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the YYYY-MM-DD format used for planting and forecast dates.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type CropCalendarInput struct {
	CropType                string `json:"cropType"`
	PlantingDate            string `json:"plantingDate"`
	Location                string `json:"location"`
	GrowingSeasonLengthDays *int   `json:"growingSeasonLengthDays,omitempty"`
}

// MaxGrowingSeasonDays bounds the optional season length to two years.
const MaxGrowingSeasonDays = 730

func (in *CropCalendarInput) SetDefaults() {
	in.CropType = strings.TrimSpace(in.CropType)
	in.PlantingDate = strings.TrimSpace(in.PlantingDate)
	in.Location = strings.TrimSpace(in.Location)
}

func (in *CropCalendarInput) Validate() []FieldError {
	var errs []FieldError
	errs = requireText(errs, "cropType", in.CropType, "Crop type is required.")
	switch {
	case in.PlantingDate == "":
		errs = append(errs, FieldError{Field: "plantingDate", Message: "Planting date is required."})
	case !datePattern.MatchString(in.PlantingDate):
		errs = append(errs, FieldError{Field: "plantingDate", Message: "Invalid planting date format. Please use YYYY-MM-DD."})
	default:
		if _, err := time.Parse(DateLayout, in.PlantingDate); err != nil {
			errs = append(errs, FieldError{Field: "plantingDate", Message: "Planting date is not a valid calendar date."})
		}
	}
	errs = requireText(errs, "location", in.Location, "Location/Climate context is required.")
	if d := in.GrowingSeasonLengthDays; d != nil && (*d <= 0 || *d > MaxGrowingSeasonDays) {
		errs = append(errs, FieldError{Field: "growingSeasonLengthDays", Message: "Growing season length must be between 1 and 730 days."})
	}
	return errs
}

type CropCalendarOutput struct {
	CropType     string         `json:"cropType"`
	PlantingDate string         `json:"plantingDate"`
	Location     string         `json:"location"`
	Schedule     []CalendarTask `json:"schedule"`
	Notes        string         `json:"notes,omitempty"`
}

type CalendarTask struct {
	TaskName           string `json:"taskName"`
	Description        string `json:"description"`
	EstimatedDateRange string `json:"estimatedDateRange"`
	Details            string `json:"details,omitempty"`
}
