package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/agrimitra/agrimitra/internal/config"
)

// New returns the generator selected by cfg.LLMProvider. It returns a nil
// Generator and no error when the provider has no API key; flows that need a
// model then report themselves unavailable.
func New(ctx context.Context, cfg *config.Config) (Generator, error) {
	key := cfg.APIKeyForProvider()
	if key == "" {
		log.Warn().Str("provider", cfg.LLMProvider).Msg("no API key configured, model-backed flows disabled")
		return nil, nil
	}

	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		c := NewAnthropicClient(key, cfg.Model(), cfg.AnthropicBaseURL, cfg.MaxOutputTokens)
		log.Info().Str("provider", cfg.LLMProvider).Str("model", c.Model()).Msg("llm generator ready")
		return c, nil
	case config.ProviderGemini:
		c, err := NewGeminiClient(ctx, key, cfg.Model(), cfg.GeminiBaseURL, cfg.MaxOutputTokens)
		if err != nil {
			return nil, err
		}
		log.Info().Str("provider", cfg.LLMProvider).Str("model", c.Model()).Msg("llm generator ready")
		return c, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
