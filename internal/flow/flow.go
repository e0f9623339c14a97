// Package flow binds an input schema, an output schema, a prompt template
// and a post-processing step into a named, callable flow.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agrimitra/agrimitra/internal/llm"
	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/prompt"
	"github.com/agrimitra/agrimitra/internal/schema"
	"github.com/agrimitra/agrimitra/internal/security"
	"github.com/agrimitra/agrimitra/internal/tools"
)

// Env is what a running flow may use.
type Env struct {
	// Generator is nil when no model is configured.
	Generator llm.Generator
	Prompts   *prompt.Library
	// Guard screens free-text fields; nil disables screening.
	Guard   *security.PromptValidator
	Audit   *security.AuditLogger
	Now     tools.Clock
	Timeout time.Duration
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Flow is a named pipeline from a JSON input to a typed JSON result.
type Flow struct {
	Name        string
	Type        models.ResultType
	Title       string
	Description string
	Input       *schema.Schema
	Output      *schema.Schema
	RequiresLLM bool

	run func(ctx context.Context, env *Env, raw []byte) (any, error)
}

func (f *Flow) Info() models.FlowInfo {
	return models.FlowInfo{
		Name:         f.Name,
		Type:         string(f.Type),
		Title:        f.Title,
		Description:  f.Description,
		RequiresLLM:  f.RequiresLLM,
		InputSchema:  f.Input.ToMap(),
		OutputSchema: f.Output.ToMap(),
	}
}

// Definition declares a flow over typed input and output records.
type Definition[In, Out any] struct {
	Name        string
	Type        models.ResultType
	Title       string
	Description string
	Input       *schema.Schema
	Output      *schema.Schema

	// Template defaults to Name.
	Template string
	// FreeText lists input fields the Guard screens.
	FreeText []string

	// Media extracts attachments sent with the prompt.
	Media func(in *In) ([]llm.Media, error)
	// Shortcut answers without generating when it returns true.
	Shortcut func(in *In) (*Out, bool)
	// Produce replaces the model call.
	Produce func(ctx context.Context, env *Env, in *In) (*Out, error)
	// Fallback answers when the model returns nothing usable.
	Fallback func(in *In) *Out
	// PostProcess adjusts the decoded output in place.
	PostProcess func(env *Env, in *In, out *Out)
}

type defaulter interface{ SetDefaults() }

type validator interface {
	Validate() []models.FieldError
}

// Define builds a Flow from d.
func Define[In, Out any](d Definition[In, Out]) *Flow {
	if d.Template == "" {
		d.Template = d.Name
	}
	return &Flow{
		Name:        d.Name,
		Type:        d.Type,
		Title:       d.Title,
		Description: d.Description,
		Input:       d.Input,
		Output:      d.Output,
		RequiresLLM: d.Produce == nil,
		run:         d.run,
	}
}

func (s Definition[In, Out]) run(ctx context.Context, env *Env, raw []byte) (any, error) {
	in, media, err := s.decode(env, raw)
	if err != nil {
		return nil, err
	}

	if s.Shortcut != nil {
		if out, ok := s.Shortcut(in); ok {
			log.Debug().Str("flow", s.Name).Msg("answered without generation")
			return out, nil
		}
	}

	var out *Out
	if s.Produce != nil {
		out, err = s.Produce(ctx, env, in)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
		}
	} else {
		out, err = s.generate(ctx, env, in, media)
		if err != nil {
			return nil, err
		}
	}

	if s.PostProcess != nil {
		s.PostProcess(env, in, out)
	}
	return out, nil
}

// decode runs every input check: JSON syntax, request schema, typed rules,
// free-text screening and attachment decoding.
func (s Definition[In, Out]) decode(env *Env, raw []byte) (*In, []llm.Media, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if !json.Valid(raw) {
		return nil, nil, invalid(models.FieldError{Message: "request body is not valid JSON"})
	}

	errs, err := schema.Validate(s.Input, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: input schema: %w", s.Name, err)
	}
	if len(errs) > 0 {
		return nil, nil, invalid(errs...)
	}

	in := new(In)
	if err := json.Unmarshal(raw, in); err != nil {
		return nil, nil, invalid(models.FieldError{Message: "invalid input: " + err.Error()})
	}
	if d, ok := any(in).(defaulter); ok {
		d.SetDefaults()
	}
	if v, ok := any(in).(validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			return nil, nil, invalid(errs...)
		}
	}

	if env.Guard != nil && len(s.FreeText) > 0 {
		values, err := textFields(in)
		if err != nil {
			return nil, nil, err
		}
		if errs := env.Guard.ValidateFields(s.FreeText, values); len(errs) > 0 {
			return nil, nil, invalid(errs...)
		}
	}

	var media []llm.Media
	if s.Media != nil {
		media, err = s.Media(in)
		if err != nil {
			return nil, nil, err
		}
	}
	return in, media, nil
}

func (s Definition[In, Out]) generate(ctx context.Context, env *Env, in *In, media []llm.Media) (*Out, error) {
	if env.Generator == nil {
		return nil, ErrUnavailable
	}

	userPrompt, err := env.Prompts.Render(s.Template, in)
	if err != nil {
		return nil, err
	}
	system, err := env.Prompts.System(s.Output.ToMap())
	if err != nil {
		return nil, err
	}

	if env.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, env.Timeout)
		defer cancel()
	}

	log.Debug().
		Str("flow", s.Name).
		Str("prompt_hash", security.Hash(userPrompt)).
		Int("media", len(media)).
		Msg("calling model")

	resp, err := env.Generator.Generate(ctx, llm.Request{
		Flow:         s.Name,
		System:       system,
		Prompt:       userPrompt,
		Media:        media,
		OutputSchema: s.Output,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNoJSON) && s.Fallback != nil {
			log.Warn().Str("flow", s.Name).Msg("model returned no JSON, using fallback")
			return s.Fallback(in), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	if errs, verr := schema.Validate(s.Output, []byte(resp.JSON)); verr == nil && len(errs) > 0 {
		log.Warn().
			Str("flow", s.Name).
			Int("violations", len(errs)).
			Str("first", errs[0].Error()).
			Msg("model output does not match schema")
	}

	out := new(Out)
	if err := json.Unmarshal(resp.JSON, out); err != nil {
		if s.Fallback != nil {
			log.Warn().Err(err).Str("flow", s.Name).Msg("undecodable model output, using fallback")
			return s.Fallback(in), nil
		}
		return nil, fmt.Errorf("%w: decode model output: %w", ErrGeneration, err)
	}
	return out, nil
}

// textFields returns the string-valued JSON fields of in.
func textFields(in any) (map[string]string, error) {
	ctx, err := prompt.Context(in)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(ctx))
	for k, v := range ctx {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}
