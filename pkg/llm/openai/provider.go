package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-chat-be/pkg/llm"
)

const DefaultBaseURL = "https://api.openai.com"

type OpenAIProvider struct {
	BaseURL    string
	APIKey     string
	ModelName  string
	ImageModel string
	Client     *http.Client
}

// Ensure OpenAIProvider implements both contracts
var _ llm.LLMProvider = &OpenAIProvider{}
var _ llm.ImageGenerator = &OpenAIProvider{}

func NewOpenAIProvider(baseURL, apiKey, modelName, imageModel string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenAIProvider{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		ModelName:  modelName,
		ImageModel: imageModel,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Id      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role string `json:"role"`
			// Pointer so an absent field is distinguishable from a reply
			// that is genuinely the empty string.
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size,omitempty"`
}

// --- Interface Implementation ---

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{Role: role, Content: msg.Content}
	}

	reqPayload := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	}

	bodyBytes, err := p.post(ctx, "/v1/chat/completions", reqPayload)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(bodyBytes, &resp); err != nil {
		return "", &llm.GatewayError{Provider: "openai", Message: "malformed completion payload", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &llm.GatewayError{Provider: "openai", Message: "completion payload has no choices"}
	}
	content := resp.Choices[0].Message.Content
	if content == nil {
		return "", &llm.GatewayError{Provider: "openai", Message: "completion payload missing reply content"}
	}

	return *content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *OpenAIProvider) GenerateImage(ctx context.Context, prompt, size string) (*llm.ImageResult, error) {
	reqPayload := imageRequest{
		Model:  p.ImageModel,
		Prompt: prompt,
		Size:   size,
	}

	bodyBytes, err := p.post(ctx, "/v1/images/generations", reqPayload)
	if err != nil {
		return nil, err
	}

	var result llm.ImageResult
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, &llm.GatewayError{Provider: "openai", Message: "malformed image payload", Err: err}
	}

	return &result, nil
}

// post sends a JSON payload and returns the response body, converting every
// failure mode into a GatewayError.
func (p *OpenAIProvider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+path, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &llm.GatewayError{Provider: "openai", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &llm.GatewayError{Provider: "openai", Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &llm.GatewayError{
			Provider: "openai",
			Status:   resp.StatusCode,
			Message:  string(bodyBytes),
		}
	}

	return bodyBytes, nil
}
