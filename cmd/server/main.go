package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"referent/internal/api"
	"referent/internal/config"
)

func main() {
	// .env.local wins over .env; neither is required
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err == nil {
			log.Printf("[Main] loaded environment from %s", f)
		}
	}

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if cfg.OpenRouter.APIKey == "" {
		log.Printf("[Main] WARNING: OPENROUTER_API_KEY is not set, text generation will answer 503")
	}
	if cfg.HuggingFace.APIKey == "" {
		log.Printf("[Main] WARNING: HUGGINGFACE_API_KEY is not set, illustrations will answer 503")
	}
	log.Printf("[Main] text model %s, %d image models", cfg.OpenRouter.Model, len(cfg.HuggingFace.Models))

	r := api.SetupRouter(cfg)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
