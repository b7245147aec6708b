package providers

import "context"

// GenerationRequest carries a single chat-style completion request.
type GenerationRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// TextGenerator defines the interface for LLM text generation
type TextGenerator interface {
	// Generate produces a completion for the request
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
