package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	Host        string `json:"host" yaml:"host"`
	Port        int    `json:"port" yaml:"port"`
	Environment string `json:"environment" yaml:"environment"`
	APIPrefix   string `json:"api_prefix" yaml:"api_prefix"`
	LogLevel    string `json:"log_level" yaml:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins"`

	// Auth (API routes only; the web forms stay public)
	APIKeyHeader string   `json:"api_key_header" yaml:"api_key_header"`
	APIKeys      []string `json:"api_keys" yaml:"api_keys"`
	EnableAuth   bool     `json:"enable_auth" yaml:"enable_auth"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`

	// Security
	MaxFieldLength     int   `json:"max_field_length" yaml:"max_field_length"`
	MaxUploadBytes     int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	EnableAuditLogging bool  `json:"enable_audit_logging" yaml:"enable_audit_logging"`

	// AI / LLM
	LLMProvider      string            `json:"llm_provider" yaml:"llm_provider"` // "anthropic" | "gemini"
	AnthropicAPIKey  string            `json:"anthropic_api_key" yaml:"anthropic_api_key"`
	AnthropicBaseURL string            `json:"anthropic_base_url" yaml:"anthropic_base_url"`
	GeminiAPIKey     string            `json:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiBaseURL    string            `json:"gemini_base_url" yaml:"gemini_base_url"`
	LLMTimeout       int               `json:"llm_timeout" yaml:"llm_timeout"` // seconds
	MaxOutputTokens  int               `json:"max_output_tokens" yaml:"max_output_tokens"`
	ModelList        map[string]string `json:"model_list" yaml:"model_list"` // provider -> model ID

	// Prompt templates on disk override the embedded defaults when present.
	PromptDir string `json:"prompt_dir" yaml:"prompt_dir"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		APIPrefix:          DefaultAPIPrefix,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		APIKeyHeader:       "X-API-Key",
		EnableAuth:         false,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		MaxFieldLength:     DefaultMaxFieldLength,
		MaxUploadBytes:     DefaultMaxUploadBytes,
		EnableAuditLogging: true,
		LLMProvider:        DefaultLLMProvider,
		LLMTimeout:         DefaultLLMTimeout,
		MaxOutputTokens:    DefaultMaxOutputTokens,
		ModelList: map[string]string{
			ProviderAnthropic: DefaultAnthropicModel,
			ProviderGemini:    DefaultGeminiModel,
		},
	}

	if path := getEnv("AGRIMITRA_CONFIG", ""); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.LLMProvider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("unknown llm_provider %q (want %q or %q)", c.LLMProvider, ProviderAnthropic, ProviderGemini)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("llm_timeout must be positive, got %d", c.LLMTimeout)
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("api_prefix must start with '/', got %q", c.APIPrefix)
	}
	return nil
}

// APIKeyForProvider returns the key configured for the selected LLM provider.
func (c *Config) APIKeyForProvider() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.AnthropicAPIKey
}

// Model returns the model ID for the selected provider.
func (c *Config) Model() string {
	if m := c.ModelList[c.LLMProvider]; m != "" {
		return m
	}
	if c.LLMProvider == ProviderGemini {
		return DefaultGeminiModel
	}
	return DefaultAnthropicModel
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("AGRIMITRA_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("AGRIMITRA_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("AGRIMITRA_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("AGRIMITRA_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("AGRIMITRA_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("AGRIMITRA_CORS_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("AGRIMITRA_LLM_PROVIDER", ""); v != "" {
		cfg.LLMProvider = strings.ToLower(v)
	}
	if v := getEnv("AGRIMITRA_MODEL", ""); v != "" {
		if cfg.ModelList == nil {
			cfg.ModelList = make(map[string]string)
		}
		cfg.ModelList[cfg.LLMProvider] = v
	}
	if v := getEnv("AGRIMITRA_LLM_TIMEOUT", ""); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			cfg.LLMTimeout = t
		}
	}
	if v := getEnv("AGRIMITRA_PROMPT_DIR", ""); v != "" {
		cfg.PromptDir = v
	}
	if v := getEnv("AGRIMITRA_MAX_UPLOAD_BYTES", ""); v != "" {
		if b, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxUploadBytes = b
		}
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("GEMINI_BASE_URL", ""); v != "" {
		cfg.GeminiBaseURL = v
	}
	if v := getEnv("GEMINI_API_KEY", ""); v != "" {
		cfg.GeminiAPIKey = v
	} else if v := getEnv("GOOGLE_API_KEY", ""); v != "" {
		cfg.GeminiAPIKey = v
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
