package flow

import (
	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/schema"
)

const CropCalendarName = "crop-calendar"

// CropCalendar plans tasks from planting to harvest.
func CropCalendar() *Flow {
	return Define(Definition[models.CropCalendarInput, models.CropCalendarOutput]{
		Name:        CropCalendarName,
		Type:        models.ResultCalendar,
		Title:       "Crop Calendar",
		Description: "Plan every task from soil preparation to harvest for your crop and planting date.",
		Input: schema.Object("Crop, planting date and location.",
			schema.P("cropType", requiredText("Crop to plan for.", "Crop type is required.")),
			schema.P("plantingDate", requiredText("Planting date, YYYY-MM-DD.", "Planting date is required.").
				Matching(`^\d{4}-\d{2}-\d{2}$`).Msg("Invalid planting date format. Please use YYYY-MM-DD.")),
			schema.P("location", requiredText("Location or climate context.", "Location/Climate context is required.")),
			schema.P("growingSeasonLengthDays", schema.Integer("Expected growing season length in days.").Range(1, models.MaxGrowingSeasonDays).
				Msg("Growing season length must be between 1 and 730 days.").Optional()),
		),
		Output: schema.Object("Crop calendar.",
			schema.P("cropType", schema.String("Crop the calendar is for.")),
			schema.P("plantingDate", schema.String("Planting date, YYYY-MM-DD.")),
			schema.P("location", schema.String("Location or climate context.")),
			schema.P("schedule", schema.Array("Tasks in chronological order.", schema.Object("A task.",
				schema.P("taskName", schema.String("Name of the task.")),
				schema.P("description", schema.String("Purpose of the task.")),
				schema.P("estimatedDateRange", schema.String("When to do it relative to planting.")),
				schema.P("details", schema.String("Specific instructions.").Optional()),
			))),
			schema.P("notes", schema.String("General notes for this crop and location.").Optional()),
		),
		FreeText: []string{"cropType", "location"},
		PostProcess: func(_ *Env, in *models.CropCalendarInput, out *models.CropCalendarOutput) {
			out.CropType = in.CropType
			out.PlantingDate = in.PlantingDate
			out.Location = in.Location
			if out.Schedule == nil {
				out.Schedule = []models.CalendarTask{}
			}
		},
	})
}
