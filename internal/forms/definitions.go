package forms

import (
	"github.com/agrimitra/agrimitra/internal/flow"
	"github.com/agrimitra/agrimitra/internal/models"
)

var soilTypes = []Option{
	{Value: "sandy", Label: "Sandy"},
	{Value: "loamy", Label: "Loamy"},
	{Value: "clayey", Label: "Clayey"},
	{Value: "silt", Label: "Silt"},
	{Value: "peat", Label: "Peat"},
	{Value: "chalky", Label: "Chalky"},
}

var all = []*Form{
	{
		Flow:           flow.CropRecommendationName,
		Heading:        "Get Crop Recommendations",
		Submit:         "Get Recommendations",
		Success:        "Crop recommendations generated successfully.",
		FailureMessage: "Failed to get recommendation. Please try again.",
		Fields: []Field{
			{Name: "nitrogenLevel", Label: "Nitrogen (N)", Kind: KindNumber, Required: true, Min: ptr(0), Default: "50",
				RangeMessage: "Nitrogen level cannot be negative."},
			{Name: "phosphorusLevel", Label: "Phosphorus (P)", Kind: KindNumber, Required: true, Min: ptr(0), Default: "50",
				RangeMessage: "Phosphorus level cannot be negative."},
			{Name: "potassiumLevel", Label: "Potassium (K)", Kind: KindNumber, Required: true, Min: ptr(0), Default: "50",
				RangeMessage: "Potassium level cannot be negative."},
			{Name: "moistureLevel", Label: "Moisture Level", Kind: KindNumber, Required: true, Min: ptr(0), Default: "50",
				RangeMessage: "Moisture level cannot be negative."},
			{Name: "temperature", Label: "Temperature (°C)", Kind: KindNumber, Required: true, Default: "25"},
			{Name: "rainfall", Label: "Rainfall (mm)", Kind: KindNumber, Required: true, Min: ptr(0), Default: "100",
				RangeMessage: "Rainfall cannot be negative."},
		},
	},
	{
		Flow:           flow.FertilizerSuggestionName,
		Heading:        "Get Fertilizer Suggestions",
		Submit:         "Get Suggestion",
		Success:        "Fertilizer recommendation generated successfully.",
		FailureMessage: "Could not generate fertilizer recommendation.",
		Fields: []Field{
			{Name: "soilType", Label: "Soil Type", Kind: KindSelect, Required: true, Placeholder: "Select soil type",
				Options: soilTypes, RequiredMessage: "Soil type is required."},
			{Name: "pH", Label: "Soil pH", Kind: KindNumber, Required: true, Min: ptr(0), Max: ptr(14), Step: "0.1", Default: "7",
				RangeMessage: "pH must be between 0 and 14."},
			{Name: "temperature", Label: "Soil Temperature (°C)", Kind: KindNumber, Required: true, Default: "25"},
			{Name: "crop", Label: "Crop Name", Kind: KindText, Required: true, Placeholder: "e.g., Corn, Wheat, Tomato",
				RequiredMessage: "Crop name is required."},
		},
	},
	{
		Flow:           flow.DiseaseDetectionName,
		Heading:        "Detect Crop Disease",
		Submit:         "Detect Disease",
		Success:        "Image analysis complete.",
		FailureMessage: "Could not analyze the image. Please try again later.",
		Fields: []Field{
			{Name: "photoDataUri", Label: "Plant Photo", Kind: KindFile, Required: true, Accept: "image/*",
				RequiredMessage: "Please select an image file."},
		},
	},
	{
		Flow:           flow.MarketPriceName,
		Heading:        "Get Market Price Insights",
		Submit:         "Get Prices",
		Success:        "Market price insights generated.",
		FailureMessage: "Could not retrieve market price information.",
		Fields: []Field{
			{Name: "cropName", Label: "Crop Name", Kind: KindText, Required: true, Placeholder: "e.g., Wheat, Corn, Soybeans",
				RequiredMessage: "Crop name is required."},
			{Name: "location", Label: "Location", Kind: KindText, Required: true, Placeholder: "e.g., Mumbai, Maharashtra or North India",
				RequiredMessage: "Location is required (e.g., city, region)."},
		},
	},
	{
		Flow:           flow.WeatherForecastName,
		Heading:        "Get Weather Forecast & Alerts",
		Submit:         "Get Forecast",
		Success:        "Weather forecast ready.",
		FailureMessage: "Could not retrieve weather information.",
		Fields: []Field{
			{Name: "location", Label: "Location", Kind: KindText, Required: true, Placeholder: "e.g., Pune, Maharashtra or Your Village Name",
				RequiredMessage: "Location is required (e.g., city, region)."},
		},
	},
	{
		Flow:           flow.GovernmentSchemesName,
		Heading:        "Find Government Schemes & Subsidies",
		Submit:         "Find Schemes",
		Success:        "Government schemes information ready.",
		FailureMessage: "Could not retrieve government schemes information.",
		Fields: []Field{
			{Name: "location", Label: "Location (State/Region)", Kind: KindText, Required: true, Placeholder: "e.g., Maharashtra, Punjab",
				RequiredMessage: "Location (State/Region) is required."},
			{Name: "cropType", Label: "Crop Type (Optional)", Kind: KindText, Placeholder: "e.g., Rice, Cotton"},
			{Name: "farmerCategory", Label: "Farmer Category (Optional)", Kind: KindText, Placeholder: "e.g., Smallholder, Organic"},
		},
	},
	{
		Flow:           flow.CropCalendarName,
		Heading:        "Generate Crop Calendar & Task Reminders",
		Submit:         "Generate Calendar",
		Success:        "Personalized crop calendar created.",
		FailureMessage: "Could not create the crop calendar.",
		Fields: []Field{
			{Name: "cropType", Label: "Crop Type", Kind: KindText, Required: true, Placeholder: "e.g., Tomato, Wheat",
				RequiredMessage: "Crop type is required."},
			{Name: "plantingDate", Label: "Planting Date", Kind: KindDate, Required: true,
				RequiredMessage: "Planting date is required."},
			{Name: "location", Label: "Location / Climate Context", Kind: KindText, Required: true,
				Placeholder: "e.g., Punjab, India or Coastal California", RequiredMessage: "Location/Climate context is required."},
			{Name: "growingSeasonLengthDays", Label: "Est. Growing Season (Days, Optional)", Kind: KindNumber, Integer: true,
				Min: ptr(1), Max: ptr(models.MaxGrowingSeasonDays), Placeholder: "e.g., 90", RangeMessage: "Growing season length must be between 1 and 730 days."},
		},
	},
}

var byFlow = func() map[string]*Form {
	m := make(map[string]*Form, len(all))
	for _, f := range all {
		m[f.Flow] = f
	}
	return m
}()

// Forms returns every feature form in dashboard order.
func Forms() []*Form { return all }

// Lookup returns the form for a flow.
func Lookup(flowName string) (*Form, bool) {
	f, ok := byFlow[flowName]
	return f, ok
}
