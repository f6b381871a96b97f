package llm

import (
	"context"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any completion backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the assistant reply
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// ImageResult is the provider's image payload, passed through to the caller
// unmodified.
type ImageResult struct {
	Created int64        `json:"created"`
	Data    []ImageDatum `json:"data"`
}

type ImageDatum struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// ImageGenerator defines the contract for image generation backends
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, size string) (*ImageResult, error)
}

// GatewayError marks any failure of a provider call: transport errors,
// non-2xx statuses, and payloads missing the reply. Callers must not treat
// it as an empty-but-successful reply.
type GatewayError struct {
	Provider string
	Status   int // HTTP status from the provider, 0 on transport errors
	Message  string
	Err      error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s gateway: status %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s gateway: %s", e.Provider, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
