package flow

import (
	"errors"
	"strings"

	"github.com/agrimitra/agrimitra/internal/metrics"
	"github.com/agrimitra/agrimitra/internal/models"
)

var (
	// ErrValidation means the input was rejected before any generation.
	ErrValidation = errors.New("validation failed")
	// ErrGeneration means the model call failed or returned nothing usable.
	ErrGeneration  = errors.New("generation failed")
	ErrUnavailable = errors.New("no language model configured")
	ErrUnknownFlow = errors.New("unknown flow")
)

// ValidationError carries the per-field messages of a rejected input.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(fields ...models.FieldError) error {
	return &ValidationError{Fields: fields}
}

// FieldErrors returns the field messages wrapped in err, if any.
func FieldErrors(err error) []models.FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// Outcome classifies err into a metrics outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrValidation):
		return metrics.OutcomeValidationError
	case errors.Is(err, ErrUnavailable):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeGenerationError
	}
}
