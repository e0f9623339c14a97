package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimitra/agrimitra/internal/schema"
)

func fertilizerSchema() *schema.Schema {
	return schema.Object("fertilizer input",
		schema.P("soilType", schema.String("soil type").NonEmpty().Msg("Soil type is required.").MissingMsg("Soil type is required.")),
		schema.P("pH", schema.Number("soil pH").Range(0, 14).Msg("pH must be between 0 and 14.")),
		schema.P("crop", schema.String("crop").NonEmpty()),
		schema.P("notes", schema.String("free text").Optional()),
	)
}

func TestToMapRequiredKeepsDeclarationOrder(t *testing.T) {
	m := fertilizerSchema().ToMap()
	assert.Equal(t, "object", m["type"])
	assert.Equal(t, []string{"soilType", "pH", "crop"}, m["required"])

	props := m["properties"].(map[string]any)
	ph := props["pH"].(map[string]any)
	assert.Equal(t, 0.0, ph["minimum"])
	assert.Equal(t, 14.0, ph["maximum"])
}

func TestValidateAcceptsGoodInput(t *testing.T) {
	errs, err := schema.Validate(fertilizerSchema(), []byte(`{"soilType":"Loamy","pH":6.5,"crop":"Wheat"}`))
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateUsesCustomMessages(t *testing.T) {
	errs, err := schema.Validate(fertilizerSchema(), map[string]any{"soilType": "Loamy", "pH": 15, "crop": "Wheat"})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "pH", errs[0].Field)
	assert.Equal(t, "pH must be between 0 and 14.", errs[0].Message)
}

func TestValidateRejectsNonNumeric(t *testing.T) {
	errs, err := schema.Validate(fertilizerSchema(), []byte(`{"soilType":"Loamy","pH":"acidic","crop":"Wheat"}`))
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Equal(t, "pH", errs[0].Field)
	assert.Contains(t, errs[0].Message, "Invalid type")
}

func TestValidateReportsMissingProperty(t *testing.T) {
	errs, err := schema.Validate(fertilizerSchema(), []byte(`{"pH":7,"crop":"Wheat"}`))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "soilType", errs[0].Field)
	assert.Equal(t, "Soil type is required.", errs[0].Message)
}

func TestValidateNestedArrayPath(t *testing.T) {
	s := schema.Object("out",
		schema.P("crops", schema.Array("crops", schema.Object("crop",
			schema.P("cropName", schema.String("name")),
			schema.P("suitabilityScore", schema.Number("score").Range(0, 100)),
		))),
	)
	errs, err := schema.Validate(s, []byte(`{"crops":[{"cropName":"Rice","suitabilityScore":140}]}`))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "crops.0.suitabilityScore", errs[0].Field)
}

func TestLookup(t *testing.T) {
	s := schema.Object("out",
		schema.P("schedule", schema.Array("tasks", schema.Object("task",
			schema.P("taskName", schema.String("name")),
		))),
	)
	require.NotNil(t, s.Lookup("schedule.3.taskName"))
	assert.Equal(t, "string", s.Lookup("schedule.3.taskName").Type)
	assert.Nil(t, s.Lookup("missing.field"))
	assert.Same(t, s, s.Lookup(""))
}
