package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/agrimitra/agrimitra/internal/schema"
)

func TestToGenaiSchema(t *testing.T) {
	s := schema.Object("out",
		schema.P("forecast", schema.Array("days", schema.Object("day",
			schema.P("date", schema.String("YYYY-MM-DD")),
			schema.P("chanceOfRainPercent", schema.Number("rain").Range(0, 100)),
		)).Len(3)),
		schema.P("notes", schema.String("notes").Optional()),
		schema.P("trend", schema.String("trend").OneOf("rising", "falling", "stable")),
	)

	g := toGenaiSchema(s)
	assert.Equal(t, genai.TypeObject, g.Type)
	assert.Equal(t, []string{"forecast", "notes", "trend"}, g.PropertyOrdering)
	assert.Equal(t, []string{"forecast", "trend"}, g.Required)

	days := g.Properties["forecast"]
	require.NotNil(t, days)
	assert.Equal(t, genai.TypeArray, days.Type)
	assert.Equal(t, int64(3), *days.MinItems)
	assert.Equal(t, int64(3), *days.MaxItems)
	assert.Equal(t, 100.0, *days.Items.Properties["chanceOfRainPercent"].Maximum)
	assert.Equal(t, []string{"rising", "falling", "stable"}, g.Properties["trend"].Enum)
}

func TestSubmitToolName(t *testing.T) {
	assert.Equal(t, "submit_crop_calendar", submitToolName("crop-calendar"))
	assert.Equal(t, "submit_result", submitToolName(""))
}
