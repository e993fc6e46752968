package llm

import "time"

// Config controls the chat-completions client
type Config struct {
	BaseURL string // e.g. https://openrouter.ai/api/v1
	APIKey  string
	Model   string

	// Attribution headers OpenRouter shows on its dashboard
	Referer string
	Title   string

	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "deepseek/deepseek-chat",
		Referer: "http://localhost:3000",
		Title:   "Referent - AI Article Summarizer",
		Timeout: 120 * time.Second,
	}
}
