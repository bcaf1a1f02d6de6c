package ports

import "context"

// GenerateRequest carries one prompt to the text-generation service.
type GenerateRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Generator produces narrative text via an LLM. Implementations must wrap
// upstream failures in domain.ErrUpstreamLLM; the core propagates them
// without retrying.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
