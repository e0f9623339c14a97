package render

import (
	"strconv"

	"github.com/agrimitra/agrimitra/internal/forms"
	"github.com/agrimitra/agrimitra/internal/models"
)

func formView(f *forms.Form, values map[string]string, errs []models.FieldError) map[string]any {
	if values == nil {
		values = f.Defaults()
	}
	byField := make(map[string]string, len(errs))
	var general []string
	for _, e := range errs {
		if e.Field == "" {
			general = append(general, e.Message)
			continue
		}
		if _, seen := byField[e.Field]; !seen {
			byField[e.Field] = e.Message
		}
	}

	fields := make([]map[string]any, 0, len(f.Fields))
	for _, fd := range f.Fields {
		options := make([]map[string]any, 0, len(fd.Options))
		for _, o := range fd.Options {
			options = append(options, map[string]any{
				"value":    o.Value,
				"label":    o.Label,
				"selected": values[fd.Name] == o.Value,
			})
		}
		fields = append(fields, map[string]any{
			"name":        fd.Name,
			"label":       fd.Label,
			"kind":        string(fd.Kind),
			"placeholder": fd.Placeholder,
			"required":    fd.Required,
			"min":         bound(fd.Min),
			"max":         bound(fd.Max),
			"step":        step(fd),
			"accept":      fd.Accept,
			"options":     options,
			"value":       values[fd.Name],
			"error":       byField[fd.Name],
		})
	}

	return map[string]any{
		"flow":      f.Flow,
		"heading":   f.Heading,
		"submit":    f.Submit,
		"multipart": f.Multipart(),
		"fields":    fields,
		"errors":    general,
	}
}

func bound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func step(fd forms.Field) string {
	switch {
	case fd.Step != "":
		return fd.Step
	case fd.Kind == forms.KindNumber && !fd.Integer:
		return "any"
	}
	return ""
}
