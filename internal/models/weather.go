package models

import "strings"

type WeatherForecastInput struct {
	Location string `json:"location"`
}

func (in *WeatherForecastInput) SetDefaults() {
	in.Location = strings.TrimSpace(in.Location)
}

func (in *WeatherForecastInput) Validate() []FieldError {
	return requireText(nil, "location", in.Location, "Location is required (e.g., city, region).")
}

type WeatherForecastOutput struct {
	Location       string         `json:"location"`
	CurrentWeather CurrentWeather `json:"currentWeather"`
	Forecast       []ForecastDay  `json:"forecast"`
	Alerts         []WeatherAlert `json:"alerts"`
}

type CurrentWeather struct {
	TemperatureCelsius float64 `json:"temperatureCelsius"`
	Condition          string  `json:"condition"`
	HumidityPercent    float64 `json:"humidityPercent"`
	WindSpeedKph       float64 `json:"windSpeedKph"`
}

type ForecastDay struct {
	Date                string  `json:"date"`
	DayCondition        string  `json:"dayCondition"`
	MaxTempCelsius      float64 `json:"maxTempCelsius"`
	MinTempCelsius      float64 `json:"minTempCelsius"`
	ChanceOfRainPercent float64 `json:"chanceOfRainPercent"`
}

type WeatherAlert struct {
	Type        string `json:"type"`
	Severity    string `json:"severity,omitempty"`
	Description string `json:"description"`
}

// Alert types and severities accepted in WeatherAlert.
var (
	AlertTypes      = []string{"Storm", "Drought", "Heavy Rain", "Heatwave", "Frost", "None"}
	AlertSeverities = []string{"Low", "Moderate", "High", "Severe"}
)

// ForecastDays is the fixed length of WeatherForecastOutput.Forecast.
const ForecastDays = 3
