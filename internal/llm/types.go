package llm

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured     = errors.New("text generation API key is not configured")
	ErrUpstreamStatus    = errors.New("text generation provider returned non-success status")
	ErrMalformedResponse = errors.New("text generation response has no message content")
	ErrUnknownAction     = errors.New("unknown generation action")
)

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body sent to /chat/completions
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// ChatResponse holds the fields we read back. Content is a pointer so a
// missing or null field can be told apart from an empty completion.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// StatusError carries the provider's HTTP status. The body is kept for logs
// only and never shown to end users.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("text generation provider returned status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}
