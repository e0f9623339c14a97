package security

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agrimitra/agrimitra/internal/models"
)

// dangerousPatterns flags prompt injection and code execution attempts in
// free-text form fields
var dangerousPatterns = []*regexp.Regexp{
	// Prompt injection
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(the\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(the\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(the\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)override\s+(all\s+)?(the\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)new\s+context\s*:`),
	regexp.MustCompile(`(?i)change\s+context\s*:`),
	regexp.MustCompile(`(?i)instead\s+of\s+the\s+above`),
	regexp.MustCompile(`(?i)\bsystem\s+prompt\b`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+`),

	// Code execution
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)exec\s*\(`),
	regexp.MustCompile(`(?i)__import__\s*\(`),
	regexp.MustCompile(`(?i)os\.system`),
	regexp.MustCompile(`(?i)<\s*script`),

	// Path traversal
	regexp.MustCompile(`\.\.\/`),
	regexp.MustCompile(`/etc/passwd`),
}

// PromptValidator screens the text a farmer types before it is interpolated
// into a prompt.
type PromptValidator struct {
	maxLen int
	pii    *PIIDetector
}

// NewPromptValidator returns a validator; a non-positive maxFieldLength
// disables the length check.
func NewPromptValidator(maxFieldLength int, pii *PIIDetector) *PromptValidator {
	return &PromptValidator{maxLen: maxFieldLength, pii: pii}
}

// ValidationResult contains validation outcome
type ValidationResult struct {
	Valid   bool
	Message string
}

// Validate checks one field value. Empty values pass; required-ness is the
// form's concern.
func (v *PromptValidator) Validate(value string) ValidationResult {
	if n := len([]rune(value)); v.maxLen > 0 && n > v.maxLen {
		return ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("must be at most %d characters (got %d)", v.maxLen, n),
		}
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(value) {
			return ValidationResult{Valid: false, Message: "contains instructions that are not allowed"}
		}
	}

	if v.pii != nil {
		if found, kw := v.pii.Detect(value); found {
			return ValidationResult{
				Valid:   false,
				Message: fmt.Sprintf("must not include personal identifiers (%s)", kw),
			}
		}
	}

	return ValidationResult{Valid: true, Message: "ok"}
}

// ValidateFields checks every value and returns one error per rejected field,
// in the order of names.
func (v *PromptValidator) ValidateFields(names []string, values map[string]string) []models.FieldError {
	var errs []models.FieldError
	for _, name := range names {
		value := strings.TrimSpace(values[name])
		if res := v.Validate(value); !res.Valid {
			errs = append(errs, models.FieldError{Field: name, Message: res.Message})
		}
	}
	return errs
}
