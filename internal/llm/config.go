package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM backend. An empty Provider
// disables LLM sentence generation.
type Config struct {
	Provider string        `yaml:"provider" env:"WORDFILL_LLM_PROVIDER"`
	Timeout  time.Duration `yaml:"timeout"  env:"WORDFILL_LLM_TIMEOUT" env-default:"30s"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key" env:"WORDFILL_LLM_ANTHROPIC_API_KEY"`
	Model  string `yaml:"model"   env:"WORDFILL_LLM_ANTHROPIC_MODEL" env-default:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"  env:"WORDFILL_LLM_OPENAI_API_KEY"`
	Model   string `yaml:"model"    env:"WORDFILL_LLM_OPENAI_MODEL" env-default:"gpt-4o-mini"`
	BaseURL string `yaml:"base_url" env:"WORDFILL_LLM_OPENAI_BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"WORDFILL_LLM_GEMINI_API_KEY"`
	Model  string `yaml:"model"   env:"WORDFILL_LLM_GEMINI_MODEL" env-default:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"  env:"WORDFILL_LLM_OPENROUTER_API_KEY"`
	Model   string `yaml:"model"    env:"WORDFILL_LLM_OPENROUTER_MODEL" env-default:"google/gemini-2.0-flash-exp"`
	BaseURL string `yaml:"base_url" env:"WORDFILL_LLM_OPENROUTER_BASE_URL"`
}

// RetryConfig controls the retry middleware.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env:"WORDFILL_LLM_RETRY_MAX_ATTEMPTS" env-default:"3"`
	InitialWait time.Duration `yaml:"initial_wait" env:"WORDFILL_LLM_RETRY_INITIAL_WAIT" env-default:"1s"`
	MaxWait     time.Duration `yaml:"max_wait"     env:"WORDFILL_LLM_RETRY_MAX_WAIT"     env-default:"10s"`
	Multiplier  float64       `yaml:"multiplier"   env:"WORDFILL_LLM_RETRY_MULTIPLIER"   env-default:"2"`
}

// DefaultConfig mirrors the env-default tags for callers that build a
// Config without cleanenv.
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
}

// Enabled reports whether a provider has been selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Discover fills in Provider and its API key from the vendor env vars
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY,
// in that order) when no provider is configured. It reports whether a
// provider was found.
func (c Config) Discover() (Config, bool) {
	if c.Enabled() {
		return c, true
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		c.Provider = ProviderGemini
		c.Gemini.APIKey = k
		return c, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		c.Provider = ProviderOpenAI
		c.OpenAI.APIKey = k
		return c, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		c.Provider = ProviderAnthropic
		c.Anthropic.APIKey = k
		return c, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		c.Provider = ProviderOpenRouter
		c.OpenRouter.APIKey = k
		return c, true
	}
	return c, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderMock:
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("WORDFILL_LLM_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("WORDFILL_LLM_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("WORDFILL_LLM_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("WORDFILL_LLM_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm retry max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
