package api

import (
	"strings"
	"time"

	"referent/internal/config"
	"referent/internal/imagegen"
	"referent/internal/llm"
	"referent/internal/webparser"
)

// Services holds the collaborators shared by all handlers. Every field is
// safe for concurrent use: only immutable configuration and http clients.
type Services struct {
	Fetcher     *webparser.Fetcher
	Extractor   *webparser.Extractor
	Text        *llm.Client
	Actions     *llm.Dispatcher
	Images      *imagegen.Client
	Illustrator *imagegen.Illustrator

	imageKey string
}

// NewServices wires the components from the loaded config.
func NewServices(cfg *config.Config) *Services {
	textCfg := llm.DefaultConfig()
	if cfg.OpenRouter.URL != "" {
		textCfg.BaseURL = cfg.OpenRouter.URL
	}
	if cfg.OpenRouter.Model != "" {
		textCfg.Model = cfg.OpenRouter.Model
	}
	if cfg.OpenRouter.Title != "" {
		textCfg.Title = cfg.OpenRouter.Title
	}
	if cfg.Server.AppURL != "" {
		textCfg.Referer = cfg.Server.AppURL
	}
	textCfg.APIKey = cfg.OpenRouter.APIKey
	text := llm.NewClient(textCfg)

	candidates := make([]imagegen.Candidate, 0, len(cfg.HuggingFace.Models))
	for _, m := range cfg.HuggingFace.Models {
		candidates = append(candidates, imagegen.Candidate{Model: m.Model, Parameters: m.Parameters})
	}
	images := imagegen.NewClient(cfg.HuggingFace.URL, candidates,
		imagegen.WithLoadingDelay(time.Duration(cfg.HuggingFace.LoadingRetrySeconds)*time.Second))

	return &Services{
		Fetcher:     webparser.NewFetcher(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, cfg.Fetch.UserAgent, cfg.Fetch.MaxSizeMB),
		Extractor:   webparser.NewExtractor(webparser.DefaultRules()),
		Text:        text,
		Actions:     llm.NewDispatcher(text),
		Images:      images,
		Illustrator: imagegen.NewIllustrator(text, images),
		imageKey:    strings.TrimSpace(cfg.HuggingFace.APIKey),
	}
}

// ImagesConfigured reports whether an image provider credential is set.
func (s *Services) ImagesConfigured() bool {
	return s.imageKey != ""
}
