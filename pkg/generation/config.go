package generation

import "time"

// Config holds generation backend settings. Empty credentials disable the
// matching strategy.
type Config struct {
	CredentialsFile string        `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	APIKey          string        `env:"GEMINI_API_KEY"`
	BaseURL         string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	Model           string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	MaxTokens       int           `env:"GENERATION_MAX_TOKENS" envDefault:"2048"`
	Temperature     float64       `env:"GENERATION_TEMPERATURE" envDefault:"0.7"`
	AttemptTimeout  time.Duration `env:"GENERATION_ATTEMPT_TIMEOUT" envDefault:"30s"`
}

// Defaults used when a Config field is zero.
const (
	DefaultBaseURL        = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel          = "gemini-2.0-flash"
	DefaultMaxTokens      = 2048
	DefaultTemperature    = 0.7
	DefaultAttemptTimeout = 30 * time.Second
)

// CloudPlatformScope is requested for service account tokens.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
