// Package llm sends one rendered prompt to a hosted model and returns the
// JSON object it answers with.
package llm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/agrimitra/agrimitra/internal/schema"
)

// ErrNoJSON is returned when the model answer holds no JSON object.
var ErrNoJSON = errors.New("model response contained no JSON object")

// Media is binary content sent alongside the prompt, such as a crop photo.
type Media struct {
	MIMEType string
	Data     []byte
}

type Request struct {
	// Flow names the calling flow; providers use it to name the output tool.
	Flow         string
	System       string
	Prompt       string
	Media        []Media
	OutputSchema *schema.Schema
}

type Response struct {
	JSON       json.RawMessage
	Provider   string
	Model      string
	StopReason string
}

// Generator is a hosted model that answers a Request with structured JSON.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) (*Response, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
