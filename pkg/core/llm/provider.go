package llm

import (
	"context"
)

// Provider is the interface for all LLM providers. The report composer uses
// it for the "rewrite these findings in prose" call; image mode uses the
// vision path for element extraction.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// VisionProvider is implemented by providers that can describe an image.
type VisionProvider interface {
	GenerateVision(ctx context.Context, prompt string, systemPrompt string, image []byte, mimeType string) (string, error)
}
