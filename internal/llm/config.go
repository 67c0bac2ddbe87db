package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration. Field tags are read by
// internal/config when the process environment is parsed.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string `env:"CURIOUSKIDS_LLM_PROVIDER"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds a single request. Zero leaves timeouts to the
	// provider SDK's defaults.
	Timeout time.Duration `env:"CURIOUSKIDS_LLM_TIMEOUT"`

	// MaxTokens caps each response. Zero means provider default, except for
	// Anthropic which requires a value and falls back to 1024.
	MaxTokens int `env:"CURIOUSKIDS_LLM_MAX_TOKENS"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `env:"CURIOUSKIDS_ANTHROPIC_API_KEY"`
	Model  string `env:"CURIOUSKIDS_ANTHROPIC_MODEL"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"CURIOUSKIDS_OPENAI_API_KEY"`
	Model   string `env:"CURIOUSKIDS_OPENAI_MODEL"`    // Default: "gpt-4o-mini"
	BaseURL string `env:"CURIOUSKIDS_OPENAI_BASE_URL"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"CURIOUSKIDS_GEMINI_API_KEY"`
	Model  string `env:"CURIOUSKIDS_GEMINI_MODEL"` // Default: "gemini-pro"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"CURIOUSKIDS_OPENROUTER_API_KEY"`
	Model   string `env:"CURIOUSKIDS_OPENROUTER_MODEL"`    // Default: "google/gemini-2.5-flash"
	BaseURL string `env:"CURIOUSKIDS_OPENROUTER_BASE_URL"` // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-pro",
		},
		OpenRouter: OpenRouterConfig{
			Model: defaultOpenRouterModel,
		},
		MaxTokens: 1024,
	}
}

// Discover fills in a provider from the standard vendor API key variables
// (GEMINI_API_KEY → OPENAI_API_KEY → ANTHROPIC_API_KEY → OPENROUTER_API_KEY)
// when the selected provider has no key. It reports whether a usable key
// is now configured.
func (c *Config) Discover() bool {
	if c.Validate() == nil {
		return true
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		c.Provider = "gemini"
		c.Gemini.APIKey = k
		return true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		c.Provider = "openai"
		c.OpenAI.APIKey = k
		return true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		c.Provider = "anthropic"
		c.Anthropic.APIKey = k
		return true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		c.Provider = "openrouter"
		c.OpenRouter.APIKey = k
		return true
	}

	return false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("CURIOUSKIDS_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("CURIOUSKIDS_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("CURIOUSKIDS_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("CURIOUSKIDS_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
