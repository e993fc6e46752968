package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ImageModelConfig is one entry of the ordered image fallback list.
type ImageModelConfig struct {
	Model      string             `json:"model"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
}

type Config struct {
	Server struct {
		Host    string `json:"host"`
		Port    int    `json:"port"`
		Subpath string `json:"subpath"`
		AppURL  string `json:"app_url"`
	} `json:"server"`
	Fetch struct {
		TimeoutSeconds int    `json:"timeout_seconds"`
		UserAgent      string `json:"user_agent"`
		MaxSizeMB      int    `json:"max_size_mb"`
	} `json:"fetch"`
	OpenRouter struct {
		URL    string `json:"url"`
		APIKey string `json:"api_key"`
		Model  string `json:"model"`
		Title  string `json:"title"`
	} `json:"openrouter"`
	HuggingFace struct {
		URL                 string             `json:"url"`
		APIKey              string             `json:"api_key"`
		LoadingRetrySeconds int                `json:"loading_retry_seconds"`
		Models              []ImageModelConfig `json:"models"`
	} `json:"huggingface"`
}

const (
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultAppURL    = "http://localhost:3000"
)

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// Default returns a config usable without any file on disk.
func Default() *Config {
	c := &Config{}
	c.Server.Host = "0.0.0.0"
	c.Server.Port = 3000
	c.Server.AppURL = DefaultAppURL
	c.Fetch.TimeoutSeconds = 15
	c.Fetch.UserAgent = DefaultUserAgent
	c.Fetch.MaxSizeMB = 10
	c.OpenRouter.URL = "https://openrouter.ai/api/v1"
	c.OpenRouter.Model = "deepseek/deepseek-chat"
	c.OpenRouter.Title = "Referent - AI Article Summarizer"
	c.HuggingFace.URL = "https://router.huggingface.co"
	c.HuggingFace.LoadingRetrySeconds = 8
	c.HuggingFace.Models = []ImageModelConfig{
		{Model: "ByteDance/SDXL-Lightning", Parameters: map[string]float64{"num_inference_steps": 4, "guidance_scale": 0}},
		{Model: "black-forest-labs/FLUX.1-schnell", Parameters: map[string]float64{"num_inference_steps": 4}},
		{Model: "stabilityai/stable-diffusion-2-1", Parameters: map[string]float64{"num_inference_steps": 25, "guidance_scale": 7.5}},
	}
	return c
}

// LoadConfig reads the config file once and applies environment overrides.
// A missing file is not an error: defaults plus environment are used.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		c := Default()
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			// json decodes into existing slice elements and merges maps, so
			// the default models must not be under the file's list.
			defaults := c.HuggingFace.Models
			c.HuggingFace.Models = nil
			if err := json.Unmarshal(raw, c); err != nil {
				cfgErr = fmt.Errorf("invalid config format: %w", err)
				return
			}
			if len(c.HuggingFace.Models) == 0 {
				c.HuggingFace.Models = defaults
			}
		case errors.Is(err, os.ErrNotExist):
			// defaults
		default:
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		if err := applyEnv(c); err != nil {
			cfgErr = err
			return
		}
		if err := c.Validate(); err != nil {
			cfgErr = err
			return
		}
		cfg = c
	})
	return cfg, cfgErr
}

func applyEnv(c *Config) error {
	if v := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")); v != "" {
		c.OpenRouter.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("HUGGINGFACE_API_KEY")); v != "" {
		c.HuggingFace.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("APP_URL")); v != "" {
		c.Server.AppURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks the fields the server cannot run without.
// Provider keys are not required here: their absence is reported per request.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.OpenRouter.Model == "" {
		return errors.New("openrouter.model must be set in config")
	}
	if len(c.HuggingFace.Models) == 0 {
		return errors.New("huggingface.models must list at least one model")
	}
	for i, m := range c.HuggingFace.Models {
		if strings.TrimSpace(m.Model) == "" {
			return fmt.Errorf("huggingface.models[%d]: empty model id", i)
		}
	}
	return nil
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
