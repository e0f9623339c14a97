package flow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/schema"
	"github.com/agrimitra/agrimitra/internal/tools"
)

const WeatherForecastName = "weather-forecast"

func weatherOutput() *schema.Schema {
	return schema.Object("Current weather, forecast and alerts.",
		schema.P("location", schema.String("Location the report is for.")),
		schema.P("currentWeather", schema.Object("Current conditions.",
			schema.P("temperatureCelsius", schema.Number("Temperature in Celsius.")),
			schema.P("condition", schema.String("Sky condition, e.g. Sunny.")),
			schema.P("humidityPercent", schema.Number("Relative humidity.").Range(0, 100)),
			schema.P("windSpeedKph", schema.Number("Wind speed in km/h.").Min(0)),
		)),
		schema.P("forecast", schema.Array("Forecast for the next three days.", schema.Object("One forecast day.",
			schema.P("date", schema.String("YYYY-MM-DD.")),
			schema.P("dayCondition", schema.String("Expected condition.")),
			schema.P("maxTempCelsius", schema.Number("Maximum temperature.")),
			schema.P("minTempCelsius", schema.Number("Minimum temperature.")),
			schema.P("chanceOfRainPercent", schema.Number("Chance of rain.").Range(0, 100)),
		)).Len(models.ForecastDays)),
		schema.P("alerts", schema.Array("Active weather alerts.", schema.Object("A weather alert.",
			schema.P("type", schema.String("Alert type.").OneOf(models.AlertTypes...)),
			schema.P("severity", schema.String("Alert severity.").OneOf(models.AlertSeverities...).Optional()),
			schema.P("description", schema.String("What the alert means.")),
		))),
	)
}

// WeatherForecast answers from the weather tool without a model call.
func WeatherForecast() *Flow {
	return Define(Definition[models.WeatherForecastInput, models.WeatherForecastOutput]{
		Name:        WeatherForecastName,
		Type:        models.ResultWeather,
		Title:       "Weather Forecast",
		Description: "See current conditions, a three day forecast and weather alerts for your area.",
		Input: schema.Object("Location to forecast.",
			schema.P("location", requiredText("City or region.", "Location is required (e.g., city, region).")),
		),
		Output:   weatherOutput(),
		FreeText: []string{"location"},
		Produce: func(ctx context.Context, env *Env, in *models.WeatherForecastInput) (*models.WeatherForecastOutput, error) {
			tool := tools.WeatherTool(env.now)
			raw, err := tool.Execute(ctx, map[string]interface{}{"location": in.Location})
			if err != nil {
				return nil, fmt.Errorf("%s: %w", tool.Name, err)
			}
			var out models.WeatherForecastOutput
			if err := json.Unmarshal([]byte(raw), &out); err != nil {
				return nil, fmt.Errorf("%s: decode: %w", tool.Name, err)
			}
			return &out, nil
		},
	})
}
