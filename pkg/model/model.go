// Package model wraps the generative model behind a small text-in/text-out
// interface. The dispatcher treats it as advisory: the model supplies
// narrative understanding and, optionally, a candidate call plan, but the
// deterministic matcher always controls execution.
package model

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrUnavailable signals that no model is loaded. Callers check Available()
// cheaply instead of eating this error on every call.
var ErrUnavailable = errors.New("model unavailable")

// Generator is the inference interface implemented by providers.
type Generator interface {
	// Generate runs one completion and returns the decoded text verbatim,
	// including any boilerplate the model wraps around the answer.
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)

	// Provider returns the provider name.
	Provider() string
}

// Advisor is what the dispatcher and gateway consume: a generator with a
// cheap availability check. *Handle implements it.
type Advisor interface {
	Generator
	Available() bool
}

// Config selects and configures the model provider.
type Config struct {
	Provider    string  `json:"provider" mapstructure:"provider"` // local, anthropic, none
	Name        string  `json:"name" mapstructure:"name"`
	BaseURL     string  `json:"base_url" mapstructure:"base_url"` // local OpenAI-compatible server
	APIKey      string  `json:"api_key" mapstructure:"api_key"`
	MaxTokens   int     `json:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `json:"temperature" mapstructure:"temperature"`
}

// DefaultConfig points at a local Ollama-style inference server.
func DefaultConfig() Config {
	return Config{
		Provider:    "local",
		Name:        "xlam-1b-fc-r",
		BaseURL:     "http://127.0.0.1:11434/v1",
		MaxTokens:   512,
		Temperature: 0.1,
	}
}

// Handle is the process-wide model resource. The underlying client is built
// lazily exactly once; after that the handle is immutable and safe for
// concurrent use without further synchronization.
type Handle struct {
	cfg Config

	once      sync.Once
	generator Generator
	initErr   error
}

// NewHandle creates an unopened handle. No network or client construction
// happens until the first Generate or Available call.
func NewHandle(cfg Config) *Handle {
	return &Handle{cfg: cfg}
}

func (h *Handle) init() {
	h.once.Do(func() {
		gen, err := newGenerator(h.cfg)
		if err != nil {
			h.initErr = err
			log.Warn().Err(err).Str("provider", h.cfg.Provider).
				Msg("Model load failed, running deterministic-only")
			return
		}
		h.generator = gen
		log.Info().Str("provider", gen.Provider()).Str("model", h.cfg.Name).
			Msg("Model handle initialized")
	})
}

// Available reports whether the model loaded. Cheap after first use.
func (h *Handle) Available() bool {
	h.init()
	return h.generator != nil
}

// Generate proxies to the loaded provider, or returns ErrUnavailable.
func (h *Handle) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	h.init()
	if h.generator == nil {
		return "", ErrUnavailable
	}
	return h.generator.Generate(ctx, prompt, maxTokens, temperature)
}

// Provider returns the active provider name, or "none".
func (h *Handle) Provider() string {
	h.init()
	if h.generator == nil {
		return "none"
	}
	return h.generator.Provider()
}

func newGenerator(cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalProvider(cfg)
	case "anthropic":
		return NewAnthropicProvider(cfg)
	case "none":
		return nil, ErrUnavailable
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
}
