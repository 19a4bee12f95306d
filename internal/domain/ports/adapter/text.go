package adapter

import "context"

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// TextGenerator is the port for LLM text generation. Marketing copy and the
// code assistant both speak through it.
type TextGenerator interface {
	// Name identifies the vendor behind the adapter ("openai", "anthropic", ...).
	Name() string

	// Generate returns only the assistant text for the given messages.
	Generate(ctx context.Context, messages []Message) (string, error)
}
