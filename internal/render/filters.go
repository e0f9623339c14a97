package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	filtersOnce sync.Once

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func registerFilters() {
	filtersOnce.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			"fmtvalue": filterFormatValue,
			"percent":  filterPercent,
			"sanitize": filterSanitize,
			"trend":    filterTrend,
		} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

// FormatValue shows booleans as Yes/No and numbers with at most two decimals.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case float64:
		return formatNumber(x)
	case float32:
		return formatNumber(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	}
	return fmt.Sprint(v)
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// TrendIcon maps a price trend to its icon; an unknown trend gets "?".
func TrendIcon(trend string) string {
	switch strings.ToLower(strings.TrimSpace(trend)) {
	case "rising":
		return "↑"
	case "falling":
		return "↓"
	case "stable":
		return "→"
	}
	return "?"
}

// Sanitize strips all markup from model-provided text.
func Sanitize(s string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

func filterFormatValue(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(FormatValue(in.Interface())), nil
}

func filterPercent(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(formatNumber(in.Float()*100) + "%"), nil
}

// The policy output is already escaped, so it is marked safe to avoid
// escaping entities twice.
func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsSafeValue(""), nil
	}
	return pongo2.AsSafeValue(Sanitize(in.String())), nil
}

func filterTrend(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(TrendIcon("")), nil
	}
	return pongo2.AsValue(TrendIcon(in.String())), nil
}
