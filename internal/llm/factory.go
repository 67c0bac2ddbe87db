package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lyngdoh/curiouskids/internal/store"
)

// NewProvider creates a Provider from configuration.
// The returned provider records every request through WithLogging.
// eventRepo may be nil, in which case requests are only logged.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		mock := NewMockProvider()
		mock.Responder = DemoResponder
		base = mock
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → defaults → logging → base
	return WithDefaults(WithLogging(base, eventRepo, log), cfg.MaxTokens), nil
}

// defaultsProvider fills request fields the caller left unset.
type defaultsProvider struct {
	inner     Provider
	maxTokens int
}

// WithDefaults applies a default MaxTokens to requests that do not set one.
func WithDefaults(p Provider, maxTokens int) Provider {
	return &defaultsProvider{inner: p, maxTokens: maxTokens}
}

func (d *defaultsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.MaxTokens == 0 {
		req.MaxTokens = d.maxTokens
	}
	return d.inner.Generate(ctx, req)
}

func (d *defaultsProvider) ModelID() string {
	return d.inner.ModelID()
}
