package llm

import (
	"context"
	"strings"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error

	// Hold, when non-nil, blocks Generate until it is closed or the
	// request context ends. Tests use it to observe in-flight states.
	Hold <-chan struct{}
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
// When the queue is empty it falls back to Responder, or reports
// ErrProviderUnavailable if none is set.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	Responder func(Request) MockResponse
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.Responder != nil:
		resp = m.Responder(req)
	default:
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: nil}
	}
	m.mu.Unlock()

	if resp.Hold != nil {
		select {
		case <-resp.Hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastPrompt returns the text of the most recent user message, or "".
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return ""
	}
	msgs := m.Calls[len(m.Calls)-1].Messages
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Content
}

// DemoResponder answers the app's own prompts with fixed content so the
// "mock" provider can drive every screen offline.
func DemoResponder(req Request) MockResponse {
	var prompt string
	if n := len(req.Messages); n > 0 {
		prompt = req.Messages[n-1].Content
	}

	switch {
	case strings.Contains(prompt, "addition"):
		return MockResponse{Text: "Question: What is 3 + 5?\nAnswer: 8"}
	case strings.Contains(prompt, "subtraction"):
		return MockResponse{Text: "Question: What is 9 - 4?\nAnswer: 5"}
	case strings.Contains(prompt, "multiplication"):
		return MockResponse{Text: "Question: What is 6 x 7?\nAnswer: 42"}
	case strings.Contains(prompt, "division"):
		return MockResponse{Text: "Question: What is 12 / 3?\nAnswer: 4"}
	case strings.Contains(prompt, "spelling bee"):
		return MockResponse{Text: "**Butterfly**"}
	case strings.HasPrefix(prompt, "Provide a simple definition"):
		return MockResponse{Text: "An insect with big, colorful wings."}
	case strings.Contains(prompt, "story"):
		return MockResponse{Text: "Once upon a time a little fox shared its berries.\n\nThe lesson: sharing makes everyone happy."}
	case strings.Contains(prompt, "main object"):
		return MockResponse{Text: "Apple\nA red fruit on a table."}
	}
	return MockResponse{Text: "Hello from the mock model!"}
}
