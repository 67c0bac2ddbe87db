package llm

import (
	"context"
		"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCanedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "first answer", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "second answer"},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != "first answer" {
		t.Fatalf("expected 'first answer', got %q", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != "second answer" {
		t.Fatalf("expected 'second answer', got %q", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "ok"},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "math-multiplication")
	if p := PurposeFrom(ctx); p != "math-multiplication" {
		t.Fatalf("expected 'math-multiplication', got %q", p)
	}

	if id := RequestIDFrom(ctx); id != "" {
		t.Fatalf("expected empty request id, got %q", id)
	}
	ctx = WithRequestID(ctx, "req-1")
	if id := RequestIDFrom(ctx); id != "req-1" {
		t.Fatalf("expected 'req-1', got %q", id)
	}
}

func TestMockProvider_HoldBlocksUntilReleased(t *testing.T) {
	hold := make(chan struct{})
	mock := NewMockProvider(MockResponse{Text: "late", Hold: hold})

	done := make(chan *Response, 1)
	go func() {
		resp, _ := mock.Generate(context.Background(), Request{})
		done <- resp
	}()

	select {
	case <-done:
		t.Fatal("Generate returned before hold was released")
	case <-time.After(20 * time.Millisecond):
	}

	close(hold)
	select {
	case resp := <-done:
		if resp.Text != "late" {
			t.Fatalf("expected 'late', got %q", resp.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("Generate did not return after hold was released")
	}
}

func TestMockProvider_HoldRespectsContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "never", Hold: make(chan struct{})})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMockProvider_ResponderFallback(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "queued"})
	mock.Responder = DemoResponder

	resp, err := mock.Generate(context.Background(), UserPrompt(nil, "queued first"))
	if err != nil || resp.Text != "queued" {
		t.Fatalf("expected queued response first, got %v / %v", resp, err)
	}

	resp, err = mock.Generate(context.Background(), UserPrompt(nil, "Generate a simple division question for kids"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Question: What is 12 / 3?\nAnswer: 4" {
		t.Fatalf("unexpected demo response: %q", resp.Text)
	}
	if mock.LastPrompt() != "Generate a simple division question for kids" {
		t.Fatalf("unexpected last prompt: %q", mock.LastPrompt())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_DiscoverPrefersGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	if !cfg.Discover() {
		t.Fatal("expected a provider to be discovered")
	}
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("expected gemini with g-key, got %q / %q", cfg.Provider, cfg.Gemini.APIKey)
	}
}

func TestConfig_DiscoverKeepsConfiguredProvider(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := DefaultConfig()
	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = "explicit"
	if !cfg.Discover() {
		t.Fatal("expected configured provider to be usable")
	}
	if cfg.Provider != "openai" {
		t.Fatalf("expected openai to be kept, got %q", cfg.Provider)
	}
}

func TestConfig_DiscoverNothing(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	cfg := DefaultConfig()
	if cfg.Discover() {
		t.Fatal("expected no provider to be discovered")
	}
}

func TestNewProvider_MockServesDemoContent(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock", MaxTokens: 64}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), UserPrompt(nil, "For kids, generate a word for a spelling bee without definition"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "**Butterfly**" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
}

func TestNewProvider_RejectsMissingKey(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestWithDefaults_FillsMaxTokens(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "a"}, MockResponse{Text: "b"})
	p := WithDefaults(mock, 300)

	_, _ = p.Generate(context.Background(), Request{})
	_, _ = p.Generate(context.Background(), Request{MaxTokens: 50})

	if mock.Calls[0].MaxTokens != 300 {
		t.Fatalf("expected default 300, got %d", mock.Calls[0].MaxTokens)
	}
	if mock.Calls[1].MaxTokens != 50 {
		t.Fatalf("expected explicit 50 to be kept, got %d", mock.Calls[1].MaxTokens)
	}
}
