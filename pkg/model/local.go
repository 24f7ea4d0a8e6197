package model

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// LocalProvider talks to a locally hosted OpenAI-compatible inference server
// (Ollama, llama.cpp server and friends). Accelerator routing is the
// server's concern; callers only see text in, text out.
type LocalProvider struct {
	client openai.Client
	model  string
}

// NewLocalProvider creates a provider against cfg.BaseURL.
func NewLocalProvider(cfg Config) (*LocalProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("local provider requires a base_url")
	}

	opts := []option.RequestOption{option.WithBaseURL(cfg.BaseURL)}
	// Local servers ignore the key but the SDK requires one.
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "local"
	}
	opts = append(opts, option.WithAPIKey(apiKey))

	return &LocalProvider{
		client: openai.NewClient(opts...),
		model:  cfg.Name,
	}, nil
}

// Provider returns the provider name.
func (p *LocalProvider) Provider() string {
	return "local"
}

// Generate runs a single-turn chat completion and returns the raw text.
func (p *LocalProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}
	if temperature > 0 {
		params.Temperature = openai.Float(temperature)
	}

	response, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return response.Choices[0].Message.Content, nil
}
