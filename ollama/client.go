package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "http://localhost:11434"

// Client talks to a local Ollama server over its streaming HTTP API
type Client struct {
	model string
	url   string
	http  *http.Client
}

// NewClient creates a client for the given model. An empty baseURL uses the
// default local server address.
func NewClient(model, baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		model: model,
		url:   baseURL,
		http:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Ping verifies the server is reachable and the model is pulled locally
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.New("could not connect to Ollama server")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama server returned %d", resp.StatusCode)
	}
	var tags struct{ Models []struct{ Name string } }
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return err
	}
	for _, m := range tags.Models {
		if m.Name == c.model {
			return nil
		}
	}
	return fmt.Errorf("model '%s' not found locally; run 'ollama pull %s'", c.model, c.model)
}

// Message is one turn in a chat request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat sends a multi-turn request to /api/chat and streams the reply text
// through handler chunk by chunk.
func (c *Client) Chat(ctx context.Context, messages []Message, handler func(string)) error {
	reqBody := map[string]interface{}{
		"model":    c.model,
		"messages": messages,
		"stream":   true,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// No timeout while streaming; the context bounds the call
	httpClient := &http.Client{Timeout: 0}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama returned %d: %s", resp.StatusCode, b)
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read stream: %w", err)
		}

		var chunk struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			Done bool `json:"done"`
		}

		if err := json.Unmarshal(line, &chunk); err != nil {
			continue
		}

		if chunk.Message.Content != "" {
			handler(chunk.Message.Content)
		}

		if chunk.Done {
			break
		}
	}

	return nil
}

// Generate sends a single-prompt request to /api/generate with an optional
// system prompt, streaming the reply through handler.
func (c *Client) Generate(ctx context.Context, prompt, system string, handler func(string)) error {
	reqBody := map[string]interface{}{
		"model":  c.model,
		"prompt": prompt,
		"stream": true,
	}
	if system != "" {
		reqBody["system"] = system
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: 0}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama returned %d: %s", resp.StatusCode, b)
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		var chunk struct {
			Response string `json:"response"`
		}
		if json.Unmarshal(line, &chunk) == nil {
			handler(chunk.Response)
		}
	}
	return nil
}
