// Package tools holds the functions flows call instead of a model.
package tools

import (
	"context"
	"time"
)

// Tool represents a callable function with a JSON-schema input, returning
// its result as a JSON string.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Execute     func(ctx context.Context, input map[string]interface{}) (string, error)
}

// Clock returns the current time. Tools take one so tests can pin dates.
type Clock func() time.Time
