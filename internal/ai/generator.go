package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

// GenerateRequest is the whole contract with the text generation service.
type GenerateRequest struct {
	Model  string
	Prompt string
}

// Generator produces text for a prompt. Implementations must honor ctx cancellation.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// OpenAIGenerator calls an OpenAI compatible chat completions endpoint.
// Setting a base URL allows other providers that speak the same protocol,
// e.g. https://generativelanguage.googleapis.com/v1beta/openai/ for Gemini.
type OpenAIGenerator struct {
	client *openai.Client
}

func NewOpenAIGenerator(apiKey, baseURL string, timeout time.Duration) *OpenAIGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(2),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	client := openai.NewClient(opts...)
	return &OpenAIGenerator{client: &client}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(req.Prompt),
		},
		Temperature: param.NewOpt(0.4),
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response: no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
