package prompt_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/prompt"
)

func newLibrary(t *testing.T, dir string) *prompt.Library {
	t.Helper()
	lib, err := prompt.NewLibrary(dir)
	require.NoError(t, err)
	return lib
}

func TestRenderInterpolatesNumbersVerbatim(t *testing.T) {
	lib := newLibrary(t, "")
	out, err := lib.Render("fertilizer-suggestion", models.FertilizerInput{
		SoilType: "Loamy", PH: 6.5, Temperature: 25, Crop: "Wheat",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Soil Type: Loamy")
	assert.Contains(t, out, "Soil pH: 6.5")
	assert.Contains(t, out, "Soil Temperature: 25°C")
	assert.NotContains(t, out, "autoescape")
}

func TestRenderOptionalSections(t *testing.T) {
	lib := newLibrary(t, "")

	without, err := lib.Render("government-schemes", models.GovernmentSchemesInput{Location: "Punjab"})
	require.NoError(t, err)
	assert.Contains(t, without, "Location: Punjab")
	assert.NotContains(t, without, "Relevant Crop")
	assert.NotContains(t, without, "Farmer Category")

	with, err := lib.Render("government-schemes", models.GovernmentSchemesInput{
		Location: "Punjab", CropType: "Wheat", FarmerCategory: "Small",
	})
	require.NoError(t, err)
	assert.Contains(t, with, "- Relevant Crop: Wheat\n")
	assert.Contains(t, with, "- Farmer Category: Small\n")
}

func TestRenderCalendarSeasonLength(t *testing.T) {
	lib := newLibrary(t, "")
	days := 120
	in := models.CropCalendarInput{CropType: "Rice", PlantingDate: "2024-06-15", Location: "Punjab"}

	out, err := lib.Render("crop-calendar", in)
	require.NoError(t, err)
	assert.NotContains(t, out, "Growing Season Length")

	in.GrowingSeasonLengthDays = &days
	out, err = lib.Render("crop-calendar", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Estimated Growing Season Length: 120 days")
}

func TestRenderDoesNotEscapeUserText(t *testing.T) {
	lib := newLibrary(t, "")
	out, err := lib.Render("market-price", models.MarketPriceInput{CropName: "Rice & Wheat", Location: "Nashik"})
	require.NoError(t, err)
	assert.Contains(t, out, "Crop: Rice & Wheat")
}

func TestOverrideDirShadowsDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "market-price.tpl"), []byte("Price of {{ cropName }} in {{ location }}"), 0o600))

	lib := newLibrary(t, dir)
	out, err := lib.Render("market-price", models.MarketPriceInput{CropName: "Onion", Location: "Lasalgaon"})
	require.NoError(t, err)
	assert.Equal(t, "Price of Onion in Lasalgaon", out)

	// Templates missing from the override dir fall back to the embedded ones.
	out, err = lib.Render("government-schemes", models.GovernmentSchemesInput{Location: "Pune"})
	require.NoError(t, err)
	assert.Contains(t, out, "Pune")
}

func TestNewLibraryRejectsMissingDir(t *testing.T) {
	_, err := prompt.NewLibrary(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRenderUnknownTemplate(t *testing.T) {
	lib := newLibrary(t, "")
	_, err := lib.Render("no-such-flow", nil)
	assert.Error(t, err)
}

func TestSystemIncludesSchema(t *testing.T) {
	lib := newLibrary(t, "")
	out, err := lib.System(map[string]any{"type": "object", "required": []string{"crops"}})
	require.NoError(t, err)
	assert.Contains(t, out, `"required": [`)
	assert.Contains(t, out, `"crops"`)
}

func TestConcurrentRenders(t *testing.T) {
	lib := newLibrary(t, "")
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lib.Render("market-price", models.MarketPriceInput{CropName: "Onion", Location: "Mumbai"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
