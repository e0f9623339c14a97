package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 9002
	DefaultEnvironment = "development"
	DefaultAPIPrefix   = "/api/v1"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 30

	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	DefaultLLMProvider     = ProviderGemini
	DefaultAnthropicModel  = "claude-sonnet-4-6"
	DefaultGeminiModel     = "gemini-2.0-flash"
	DefaultLLMTimeout      = 60 // seconds
	DefaultMaxOutputTokens = 4096

	DefaultMaxFieldLength = 200
	DefaultMaxUploadBytes = 8 << 20 // 8MB
)

var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:9002",
}
