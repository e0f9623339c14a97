package models

import "strings"

// ResultType is the tag the results renderer switches on.
type ResultType string

const (
	ResultRecommendation ResultType = "recommendation"
	ResultSuggestion     ResultType = "suggestion"
	ResultDetection      ResultType = "detection"
	ResultMarket         ResultType = "market"
	ResultWeather        ResultType = "weather"
	ResultSchemes        ResultType = "schemes"
	ResultCalendar       ResultType = "calendar"
)

// ResultTypes lists every tag in dashboard order.
var ResultTypes = []ResultType{
	ResultRecommendation,
	ResultSuggestion,
	ResultDetection,
	ResultMarket,
	ResultWeather,
	ResultSchemes,
	ResultCalendar,
}

func requireText(errs []FieldError, field, value, message string) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Message: message})
	}
	return errs
}
