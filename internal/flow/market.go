package flow

import (
	"strings"

	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/schema"
)

const MarketPriceName = "market-price"

// MarketPrice reports the current price of a crop in a location.
func MarketPrice() *Flow {
	return Define(Definition[models.MarketPriceInput, models.MarketPriceOutput]{
		Name:        MarketPriceName,
		Type:        models.ResultMarket,
		Title:       "Market Prices",
		Description: "Check the latest market price and trend for a crop near you.",
		Input: schema.Object("Crop and market location.",
			schema.P("cropName", requiredText("Name of the crop.", "Crop name is required.")),
			schema.P("location", requiredText("City or region of the market.", "Location is required (e.g., city, region).")),
		),
		Output: schema.Object("Market price information.",
			schema.P("marketData", schema.Object("Price details.",
				schema.P("cropName", schema.String("Name of the crop.")),
				schema.P("location", schema.String("Market location the price applies to.")),
				schema.P("price", schema.String("Current price, e.g. 2150.")),
				schema.P("unit", schema.String("Price unit, e.g. INR per quintal.")),
				schema.P("date", schema.String("Date of the price information, YYYY-MM-DD.")),
				schema.P("trend", schema.String("Recent price trend.").OneOf(models.TrendRising, models.TrendFalling, models.TrendStable).Optional()),
				schema.P("analysis", schema.String("Short analysis of the market.")),
			)),
		),
		FreeText: []string{"cropName", "location"},
		PostProcess: func(env *Env, in *models.MarketPriceInput, out *models.MarketPriceOutput) {
			md := &out.MarketData
			if strings.TrimSpace(md.Date) == "" {
				md.Date = env.now().Format(models.DateLayout)
			}
			switch t := strings.ToLower(strings.TrimSpace(md.Trend)); t {
			case models.TrendRising, models.TrendFalling, models.TrendStable:
				md.Trend = t
			default:
				md.Trend = ""
			}
			if md.CropName == "" {
				md.CropName = in.CropName
			}
			if md.Location == "" {
				md.Location = in.Location
			}
		},
	})
}
