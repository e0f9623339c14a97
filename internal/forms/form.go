// Package forms describes the feature forms and turns submitted form values
// into flow input.
package forms

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/agrimitra/agrimitra/internal/models"
)

type Kind string

const (
	KindNumber Kind = "number"
	KindText   Kind = "text"
	KindDate   Kind = "date"
	KindSelect Kind = "select"
	KindFile   Kind = "file"
)

type Option struct {
	Value string
	Label string
}

// Field is one form control. Messages left empty fall back to generic
// wording built from Label.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Placeholder string
	Required    bool
	Min         *float64
	Max         *float64
	Step        string
	Integer     bool
	Default     string
	Options     []Option
	Accept      string

	RequiredMessage string
	RangeMessage    string
}

// Form is the page a farmer fills in for one flow.
type Form struct {
	Flow           string
	Heading        string
	Submit         string
	Success        string
	FailureMessage string
	Fields         []Field
}

// Multipart reports whether the form carries a file.
func (f *Form) Multipart() bool {
	for _, fd := range f.Fields {
		if fd.Kind == KindFile {
			return true
		}
	}
	return false
}

// Defaults returns the initial value of every field.
func (f *Form) Defaults() map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, fd := range f.Fields {
		out[fd.Name] = fd.Default
	}
	return out
}

var dateValue = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Parse coerces submitted values into the flow's JSON input. Uploads are
// keyed by field name and already size-checked. Field errors are returned in
// field order; the JSON is nil when there are any.
func (f *Form) Parse(values url.Values, uploads map[string]*Upload) (json.RawMessage, []models.FieldError) {
	input := make(map[string]any, len(f.Fields))
	var errs []models.FieldError

	for _, fd := range f.Fields {
		if fd.Kind == KindFile {
			uri, msg := fd.parseUpload(uploads[fd.Name])
			if msg != "" {
				errs = append(errs, models.FieldError{Field: fd.Name, Message: msg})
			} else if uri != "" {
				input[fd.Name] = uri
			}
			continue
		}

		raw := strings.TrimSpace(values.Get(fd.Name))
		if raw == "" {
			if fd.Required {
				errs = append(errs, models.FieldError{Field: fd.Name, Message: fd.requiredMessage()})
			}
			continue
		}

		v, msg := fd.coerce(raw)
		if msg != "" {
			errs = append(errs, models.FieldError{Field: fd.Name, Message: msg})
			continue
		}
		input[fd.Name] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}
	out, err := json.Marshal(input)
	if err != nil {
		return nil, []models.FieldError{{Message: err.Error()}}
	}
	return out, nil
}

func (fd Field) requiredMessage() string {
	if fd.RequiredMessage != "" {
		return fd.RequiredMessage
	}
	return fd.Label + " is required."
}

func (fd Field) rangeMessage() string {
	if fd.RangeMessage != "" {
		return fd.RangeMessage
	}
	switch {
	case fd.Min != nil && fd.Max != nil:
		return fmt.Sprintf("%s must be between %s and %s.", fd.Label, trimFloat(*fd.Min), trimFloat(*fd.Max))
	case fd.Min != nil:
		return fmt.Sprintf("%s must be at least %s.", fd.Label, trimFloat(*fd.Min))
	default:
		return fmt.Sprintf("%s must be at most %s.", fd.Label, trimFloat(*fd.Max))
	}
}

func (fd Field) coerce(raw string) (any, string) {
	switch fd.Kind {
	case KindNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fd.Label + " must be a number."
		}
		if fd.Integer && n != math.Trunc(n) {
			return nil, fd.Label + " must be a whole number."
		}
		if (fd.Min != nil && n < *fd.Min) || (fd.Max != nil && n > *fd.Max) {
			return nil, fd.rangeMessage()
		}
		if fd.Integer && math.Abs(n) > maxExactInt {
			return nil, fd.Label + " is too large."
		}
		if fd.Integer {
			return int64(n), ""
		}
		return n, ""
	case KindDate:
		if !dateValue.MatchString(raw) {
			return nil, "Invalid " + strings.ToLower(fd.Label) + " format. Please use YYYY-MM-DD."
		}
		return raw, ""
	case KindSelect:
		for _, o := range fd.Options {
			if o.Value == raw {
				return raw, ""
			}
		}
		return nil, "Please choose a valid " + strings.ToLower(fd.Label) + "."
	default:
		return raw, ""
	}
}

// maxExactInt is the largest integer a float64 holds exactly.
const maxExactInt = 1 << 53

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ptr(v float64) *float64 { return &v }
