package llm

import (
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// defaultOpenRouterModel accepts images, which the identify screen sends.
	defaultOpenRouterModel = "google/gemini-2.5-flash"

	openRouterAppTitle = "Curious Kids"
)

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible
// chat API. Requests carry the app's title so they are attributed on
// the OpenRouter dashboard. Model IDs are vendor-prefixed and passed
// through untouched.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenRouterModel
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{Transport: titledTransport{base: http.DefaultTransport}}

	return &OpenRouterProvider{OpenAIProvider: &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}}, nil
}

// titledTransport adds OpenRouter's app attribution header.
type titledTransport struct {
	base http.RoundTripper
}

func (t titledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Title", openRouterAppTitle)
	return t.base.RoundTrip(req)
}
