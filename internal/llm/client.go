package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// Completer produces one chat completion for a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string, maxTokens int, temperature float64) (string, error)
}

// Client talks to an OpenAI-compatible chat-completions endpoint
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a client. A nil config means DefaultConfig().
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.config.APIKey) != ""
}

// Model returns the model identifier every request uses.
func (c *Client) Model() string {
	return c.config.Model
}

// Complete sends exactly one request with a system and a user message.
// There is no retry.
func (c *Client) Complete(ctx context.Context, systemPrompt, userText string, maxTokens int, temperature float64) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload := ChatRequest{
		Model: c.config.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	if c.config.Referer != "" {
		req.Header.Set("HTTP-Referer", c.config.Referer)
	}
	if c.config.Title != "" {
		req.Header.Set("X-Title", c.config.Title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[LLM] %s returned status %d: %s", c.config.Model, resp.StatusCode, truncate(string(body), 500))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result ChatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == nil {
		return "", ErrMalformedResponse
	}

	return strings.TrimSpace(*result.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
