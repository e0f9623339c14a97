package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agrimitra/agrimitra/internal/metrics"
	"github.com/agrimitra/agrimitra/internal/models"
	"github.com/agrimitra/agrimitra/internal/security"
)

// Result is a successful flow run.
type Result struct {
	Flow     string
	Type     models.ResultType
	Output   any
	Duration time.Duration
}

// Registry holds flows in display order and runs them against one Env.
type Registry struct {
	env    *Env
	flows  []*Flow
	byName map[string]*Flow
}

func NewRegistry(env *Env, flows ...*Flow) *Registry {
	r := &Registry{
		env:    env,
		flows:  flows,
		byName: make(map[string]*Flow, len(flows)),
	}
	for _, f := range flows {
		r.byName[f.Name] = f
	}
	return r
}

// Default returns a registry of every feature flow.
func Default(env *Env) *Registry {
	return NewRegistry(env,
		CropRecommendation(),
		FertilizerSuggestion(),
		DiseaseDetection(),
		MarketPrice(),
		WeatherForecast(),
		GovernmentSchemes(),
		CropCalendar(),
	)
}

func (r *Registry) Flows() []*Flow { return r.flows }

func (r *Registry) Get(name string) (*Flow, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// ModelAvailable reports whether flows that need a model can run.
func (r *Registry) ModelAvailable() bool { return r.env.Generator != nil }

func (r *Registry) Info() []models.FlowInfo {
	out := make([]models.FlowInfo, len(r.flows))
	for i, f := range r.flows {
		out[i] = f.Info()
	}
	return out
}

// Run executes the named flow on a JSON input.
func (r *Registry) Run(ctx context.Context, name string, raw []byte) (*Result, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlow, name)
	}

	metrics.FlowsActive.WithLabelValues(name).Inc()
	defer metrics.FlowsActive.WithLabelValues(name).Dec()

	start := time.Now()
	out, err := f.run(ctx, r.env, raw)
	elapsed := time.Since(start)

	outcome := Outcome(err)
	metrics.FlowRuns.WithLabelValues(name, outcome).Inc()
	metrics.FlowDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	r.env.Audit.LogFlowRequest(security.FlowEvent{
		Flow:       name,
		APIKey:     security.APIKeyFrom(ctx),
		Input:      raw,
		Outcome:    outcome,
		DurationMs: elapsed.Milliseconds(),
		Err:        err,
	})

	if err != nil {
		evt := log.Warn()
		if !errors.Is(err, ErrValidation) {
			evt = log.Error()
		}
		evt.Err(err).Str("flow", name).Str("outcome", outcome).Dur("duration", elapsed).Msg("flow failed")
		return nil, err
	}

	log.Info().Str("flow", name).Dur("duration", elapsed).Msg("flow completed")
	return &Result{Flow: name, Type: f.Type, Output: out, Duration: elapsed}, nil
}
