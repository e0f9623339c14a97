package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/agrimitra/agrimitra/internal/models"
)

const WeatherToolName = "get_weather_data"

// WeatherTool returns the synthetic weather source. It does not call any
// external service: a location mentioning Mumbai gets a monsoon profile and
// everything else gets a dry one.
func WeatherTool(now Clock) Tool {
	if now == nil {
		now = time.Now
	}
	return Tool{
		Name:        WeatherToolName,
		Description: "Get current conditions, a three day forecast and weather alerts for a location.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"location": map[string]interface{}{
					"type":        "string",
					"description": "City or region, e.g. 'Mumbai, Maharashtra'",
				},
			},
			"required": []string{"location"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			location, _ := input["location"].(string)
			location = strings.TrimSpace(location)
			if location == "" {
				return "", fmt.Errorf("location is required")
			}
			out, err := json.Marshal(WeatherData(location, now()))
			if err != nil {
				return "", fmt.Errorf("failed to marshal weather data: %w", err)
			}
			return string(out), nil
		},
	}
}

type dayProfile struct {
	condition string
	max, min  float64
	rain      float64
}

type weatherProfile struct {
	current  models.CurrentWeather
	forecast [models.ForecastDays]dayProfile
	alert    models.WeatherAlert
}

var (
	mumbaiProfile = weatherProfile{
		current: models.CurrentWeather{TemperatureCelsius: 29, Condition: "Partly Cloudy", HumidityPercent: 75, WindSpeedKph: 15},
		forecast: [models.ForecastDays]dayProfile{
			{"Light Rain Possible", 31, 26, 40},
			{"Showers", 30, 25, 60},
			{"Cloudy", 31, 26, 30},
		},
		alert: models.WeatherAlert{
			Type:        "Heavy Rain",
			Severity:    "Moderate",
			Description: "Possibility of heavy showers in the next 48 hours. Monitor local updates.",
		},
	}
	defaultProfile = weatherProfile{
		current: models.CurrentWeather{TemperatureCelsius: 25, Condition: "Sunny", HumidityPercent: 60, WindSpeedKph: 10},
		forecast: [models.ForecastDays]dayProfile{
			{"Mostly Sunny", 28, 22, 10},
			{"Sunny", 29, 21, 5},
			{"Partly Cloudy", 29, 22, 15},
		},
		alert: models.WeatherAlert{Type: "None", Description: "No severe weather alerts currently."},
	}
)

// WeatherData builds the synthetic report for location with forecast dates
// starting the day after now.
func WeatherData(location string, now time.Time) models.WeatherForecastOutput {
	p := defaultProfile
	if strings.Contains(strings.ToLower(location), "mumbai") {
		p = mumbaiProfile
	}

	forecast := make([]models.ForecastDay, 0, models.ForecastDays)
	for i, d := range p.forecast {
		forecast = append(forecast, models.ForecastDay{
			Date:                now.AddDate(0, 0, i+1).Format(models.DateLayout),
			DayCondition:        d.condition,
			MaxTempCelsius:      d.max,
			MinTempCelsius:      d.min,
			ChanceOfRainPercent: d.rain,
		})
	}

	return models.WeatherForecastOutput{
		Location:       location,
		CurrentWeather: p.current,
		Forecast:       forecast,
		Alerts:         []models.WeatherAlert{p.alert},
	}
}
