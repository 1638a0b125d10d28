package llm

import (
	"context"
	"fmt"
	"strings"

	"workbench/ollama"
)

// OllamaClient implements the Client interface for Ollama
type OllamaClient struct {
	client      *ollama.Client
	model       string
	temperature float64
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(config Config) (*OllamaClient, error) {
	client, err := ollama.NewClient(config.Model, config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaClient{
		client:      client,
		model:       config.Model,
		temperature: config.Temperature,
	}, nil
}

// Generate sends the conversation to Ollama's chat endpoint and collects
// the streamed reply into a single response.
func (c *OllamaClient) Generate(ctx context.Context, req Request) (*Response, error) {
	messages := make([]ollama.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, ollama.Message{Role: msg.Role, Content: msg.Content})
	}

	var content strings.Builder
	handler := func(text string) {
		content.WriteString(text)
	}

	if err := c.client.Chat(ctx, messages, handler); err != nil {
		return nil, fmt.Errorf("ollama generation error: %w", err)
	}

	return &Response{
		Content: content.String(),
		Model:   c.model,
		Metadata: map[string]any{
			"temperature": c.temperature,
		},
	}, nil
}

// GetModel returns the model name
func (c *OllamaClient) GetModel() string {
	return c.model
}

// GetProvider returns the provider name
func (c *OllamaClient) GetProvider() string {
	return "ollama"
}

// IsAvailable checks if Ollama is responding
func (c *OllamaClient) IsAvailable(ctx context.Context) bool {
	return c.client.Ping(ctx) == nil
}
