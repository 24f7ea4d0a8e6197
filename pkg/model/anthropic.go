package model

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider is the hosted alternative to the local server, selected
// with provider "anthropic" in config.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider creates a provider from cfg.APIKey.
func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic provider requires an api_key")
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Name,
	}, nil
}

// Provider returns the provider name.
func (p *AnthropicProvider) Provider() string {
	return "anthropic"
}

// Generate runs a single-turn message and concatenates the text blocks.
func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 512
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if temperature > 0 {
		params.Temperature = anthropic.Float(temperature)
	}

	response, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	text := ""
	for _, block := range response.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += b.Text
		}
	}
	return text, nil
}
