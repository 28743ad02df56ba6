package provider

import (
	"context"
	"errors"

	"github.com/dreamgarage/dreamcar/config"
	openai_provider "github.com/dreamgarage/dreamcar/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
	Gemini    Client = "gemini"
)

// Message is one message of a model conversation.
type Message = openai_provider.Message

// Provider is the interface that all LLM implementations must satisfy.
// Generate is a one-shot completion of a single prompt. ChatStream runs a
// multi-message conversation and delivers incremental tokens on out until
// the model finishes, the context is cancelled, or an error occurs. The
// callee never closes out.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ChatStream(ctx context.Context, messages []Message, out chan<- string) error
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Provider) {
	case OpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("llm api key not set")
		}
		return openai_provider.NewClient(
			cfg.APIKey,
			cfg.BaseURL,
			cfg.Model,
			cfg.Temperature,
			cfg.MaxTokens,
			cfg.Timeout,
		), nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	case Gemini:
		return nil, errors.New("gemini client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
