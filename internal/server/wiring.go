package server

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agrimitra/agrimitra/internal/config"
	"github.com/agrimitra/agrimitra/internal/flow"
	"github.com/agrimitra/agrimitra/internal/llm"
	"github.com/agrimitra/agrimitra/internal/prompt"
	"github.com/agrimitra/agrimitra/internal/security"
)

// NewRegistry wires the flows to the configured model, prompt templates and
// input guard. A missing API key leaves the model disabled.
func NewRegistry(ctx context.Context, cfg *config.Config) (*flow.Registry, error) {
	gen, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	prompts, err := prompt.NewLibrary(cfg.PromptDir)
	if err != nil {
		return nil, fmt.Errorf("prompt templates: %w", err)
	}

	env := &flow.Env{
		Generator: gen,
		Prompts:   prompts,
		Guard:     security.NewPromptValidator(cfg.MaxFieldLength, security.NewPIIDetector(security.DefaultPIIKeywords)),
		Audit:     security.NewAuditLogger(cfg.EnableAuditLogging),
		Timeout:   time.Duration(cfg.LLMTimeout) * time.Second,
	}

	log.Info().
		Str("llm_provider", cfg.LLMProvider).
		Str("model", cfg.Model()).
		Bool("llm_enabled", gen != nil).
		Str("prompt_dir", cfg.PromptDir).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Msg("flow configuration")

	return flow.Default(env), nil
}
