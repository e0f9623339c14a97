// Package render turns forms and flow results into HTML pages.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/agrimitra/agrimitra/internal/forms"
	"github.com/agrimitra/agrimitra/internal/models"
)

//go:embed templates
var embedded embed.FS

var resultTemplates = map[models.ResultType]string{
	models.ResultRecommendation: "results/recommendation.html",
	models.ResultSuggestion:     "results/suggestion.html",
	models.ResultDetection:      "results/detection.html",
	models.ResultMarket:         "results/market.html",
	models.ResultWeather:        "results/weather.html",
	models.ResultSchemes:        "results/schemes.html",
	models.ResultCalendar:       "results/calendar.html",
}

var resultTitles = map[models.ResultType]string{
	models.ResultRecommendation: "Crop Recommendations",
	models.ResultSuggestion:     "Fertilizer Suggestion",
	models.ResultDetection:      "Disease Detection Result",
	models.ResultMarket:         "Market Price Insights",
	models.ResultWeather:        "Weather Forecast & Alerts",
	models.ResultSchemes:        "Government Schemes & Subsidies",
	models.ResultCalendar:       "Crop Calendar & Tasks",
}

// Page is everything a dashboard or feature page shows. A page without Form
// is the dashboard.
type Page struct {
	Title string
	Forms []*forms.Form
	// ModelAvailable is false when features that call the model cannot run.
	ModelAvailable bool

	Form   *forms.Form
	Values map[string]string
	Errors []models.FieldError
	// Notice is the failure notification shown above the form.
	Notice string

	ResultType models.ResultType
	Result     any
}

type Renderer struct {
	set *pongo2.TemplateSet

	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

func New() (*Renderer, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	registerFilters()

	set := pongo2.NewSet("agrimitra-pages", pongo2.NewFSLoader(sub))
	set.Options.TrimBlocks = true
	set.Options.LStripBlocks = true
	return &Renderer{set: set, templates: make(map[string]*pongo2.Template)}, nil
}

// Render writes the full page.
func (r *Renderer) Render(w io.Writer, page Page) error {
	ctx := pongo2.Context{
		"title":           page.Title,
		"model_available": page.ModelAvailable,
		"notice":          page.Notice,
	}

	name := "dashboard.html"
	if page.Form == nil {
		cards := make([]map[string]any, 0, len(page.Forms))
		for _, f := range page.Forms {
			cards = append(cards, map[string]any{"flow": f.Flow, "heading": f.Heading})
		}
		ctx["cards"] = cards
	} else {
		name = "form.html"
		ctx["form"] = formView(page.Form, page.Values, page.Errors)
		if page.Result != nil {
			html, err := r.Result(page.ResultType, page.Result)
			if err != nil {
				return err
			}
			ctx["result"] = pongo2.AsSafeValue(html)
			ctx["result_title"] = resultTitles[page.ResultType]
		}
	}

	tpl, err := r.template(name)
	if err != nil {
		return err
	}
	return tpl.ExecuteWriter(ctx, w)
}

// Result renders the partial for a result type. Unknown types render as the
// empty string.
func (r *Renderer) Result(typ models.ResultType, output any) (string, error) {
	name, ok := resultTemplates[typ]
	if !ok || output == nil {
		return "", nil
	}
	data, err := toMap(output)
	if err != nil {
		return "", fmt.Errorf("render %s result: %w", typ, err)
	}
	tpl, err := r.template(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(pongo2.Context{"r": data}, &buf); err != nil {
		return "", fmt.Errorf("render %s result: %w", typ, err)
	}
	return buf.String(), nil
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.RLock()
	tpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.templates[name]; ok {
		return tpl, nil
	}
	tpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load %q: %w", name, err)
	}
	r.templates[name] = tpl
	return tpl, nil
}

// toMap flattens typed results into the JSON shape templates address.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
