package llm

import "context"

// Provider is the remote generation endpoint abstraction.
// Callers send a prompt (optionally with an image) and receive free text.
type Provider interface {
	// Generate sends the request to the hosted model and returns the
	// generated text. Transport and service failures are reported as one of
	// the typed errors in this package.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Optional.
	System string

	// Messages is the conversation history. Every screen in the app sends a
	// single user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the limit to the provider.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string

	// Image is attached before the text when set.
	Image *Image
}

// Image is an inline image payload forwarded as-is to the provider.
type Image struct {
	Data     []byte
	MIMEType string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request from a prompt and an optional image.
func UserPrompt(img *Image, prompt string) Request {
	return Request{
		Messages: []Message{{Role: RoleUser, Content: prompt, Image: img}},
	}
}

// Response holds the model's output.
type Response struct {
	// Text is the raw generated text, unmodified.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
