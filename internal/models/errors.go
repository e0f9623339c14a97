package models

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Code    int          `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is a validation failure tied to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    code,
	})
}

// WriteValidationError answers 400 with the per-field messages.
func WriteValidationError(w http.ResponseWriter, message string, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    http.StatusBadRequest,
		Errors:  errs,
	})
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
