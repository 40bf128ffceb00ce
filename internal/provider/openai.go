package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	openRouterName         = "OpenRouter"
	openRouterURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultOpenRouterModel = "openai/gpt-3.5-turbo"

	mistralName         = "Mistral"
	mistralURL          = "https://api.mistral.ai/v1/chat/completions"
	defaultMistralModel = "mistral-tiny"

	contentType = "application/json"
)

// ChatClient calls an OpenAI-compatible chat-completions endpoint.
// Both OpenRouter and Mistral speak this shape.
type ChatClient struct {
	name      string
	token     string
	model     string
	maxTokens int

	// URL is exported so tests can point the client at a local server.
	URL        string
	HTTPClient *http.Client

	logger *zap.Logger
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenRouter creates a provider backed by the OpenRouter API.
func NewOpenRouter(token, model string, logger *zap.Logger) *ChatClient {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultOpenRouterModel
	}
	return newChatClient(openRouterName, openRouterURL, token, model, logger)
}

// NewMistral creates a provider backed by the Mistral API.
func NewMistral(token, model string, logger *zap.Logger) *ChatClient {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultMistralModel
	}
	return newChatClient(mistralName, mistralURL, token, model, logger)
}

func newChatClient(name, url, token, model string, logger *zap.Logger) *ChatClient {
	return &ChatClient{
		name:      name,
		token:     strings.TrimSpace(token),
		model:     model,
		maxTokens: 2000,
		URL:       url,
		HTTPClient: &http.Client{
			Timeout: callTimeout,
		},
		logger: logger,
	}
}

func (c *ChatClient) Name() string { return c.name }

// Generate posts the prompt as a single user message and returns the
// first choice's content.
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	payload := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("chat completion request",
		zap.String("provider", c.name),
		zap.String("model", c.model),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug("chat completion request failed", zap.String("provider", c.name), zap.Error(err))
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("response contains no choices")
	}

	output := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if output == "" {
		return "", errors.New("response contains no text")
	}

	return output, nil
}
