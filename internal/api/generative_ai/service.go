package generativeAI

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/Msrrhw/JalanJalan-ai/app/observability/metrics"
	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

// AIClient wraps the Gemini API behind the text-generation capability the
// core needs: one prompt in, one text out.
type AIClient struct {
	client *genai.Client
	model  string
}

func NewAIClient(ctx context.Context, model string) (*AIClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

// GenerateContent sends a single prompt and returns the model's text. Any
// capability failure (including a context timeout) is reported as a
// generation error.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	metrics.Get().GenerationRequestsTotal.Add(ctx, 1)
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		metrics.Get().GenerationErrorsTotal.Add(ctx, 1)
		return "", fmt.Errorf("%w: %v", types.ErrGeneration, err)
	}
	return result.Text(), nil
}
