package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"referent/internal/config"
	"referent/internal/llm"
	"referent/internal/webparser"
)

func main() {
	// 1. Check Args
	args := os.Args
	if len(args) < 2 {
		fmt.Println("Usage: go run cmd/parse/main.go <URL> [ACTION]")
		fmt.Println("Example: go run cmd/parse/main.go https://example.com/article")
		fmt.Println("Example (with summary): go run cmd/parse/main.go https://example.com/article theses")
		os.Exit(1)
	}

	targetURL := args[1]
	var action llm.Action
	if len(args) >= 3 {
		a, err := llm.ParseAction(args[2])
		if err != nil {
			log.Fatalf("%v (choose one of %v)", err, llm.Actions())
		}
		action = a
	}

	// 2. Load Config
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fetcher := webparser.NewFetcher(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, cfg.Fetch.UserAgent, cfg.Fetch.MaxSizeMB)
	extractor := webparser.NewExtractor(webparser.DefaultRules())

	fmt.Printf("URL: %s\n", targetURL)
	fmt.Println("---")

	// 3. Fetch and extract
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	start := time.Now()
	html, err := fetcher.Fetch(ctx, targetURL)
	if err != nil {
		log.Fatalf("Fetch failed: %v", err)
	}
	article := extractor.Extract(html)

	fmt.Printf("Fetched %d bytes in %v\n", len(html), time.Since(start).Round(time.Millisecond))

	out, _ := json.MarshalIndent(article, "", "  ")
	fmt.Printf("\n=== ARTICLE ===\n%s\n", out)

	// Cross-check the selector rules against go-readability
	pageURL, _ := webparser.ValidateURL(targetURL)
	view, err := webparser.Read(html, pageURL)
	if err != nil {
		log.Printf("[Extractor] %v", err)
	} else {
		cmp := webparser.Compare(article, view)
		fmt.Printf("\n--- READABILITY ---\n")
		fmt.Printf("Title: %s (matches: %v)\n", view.Title, cmp.TitleMatches)
		if view.Byline != "" {
			fmt.Printf("Byline: %s\n", view.Byline)
		}
		if view.SiteName != "" {
			fmt.Printf("Site: %s\n", view.SiteName)
		}
		fmt.Printf("Excerpt: %s\n", view.Excerpt)
		fmt.Printf("Content: %d runes extracted, %d runes by readability (coverage %.0f%%)\n",
			cmp.ContentRunes, cmp.ReaderRunes, cmp.Coverage*100)
		if cmp.ReaderLonger {
			fmt.Println("Note: readability found more text; the selector rules may have picked a narrower container")
		}
	}

	if action == "" {
		return
	}
	if article.Content == nil {
		log.Fatalf("No content extracted, nothing to %s", action)
	}

	// 4. Optional generation action
	textCfg := llm.DefaultConfig()
	textCfg.BaseURL = cfg.OpenRouter.URL
	textCfg.Model = cfg.OpenRouter.Model
	textCfg.APIKey = cfg.OpenRouter.APIKey
	client := llm.NewClient(textCfg)

	result, err := llm.NewDispatcher(client).Run(ctx, action, *article.Content)
	if err != nil {
		log.Fatalf("Action %s failed: %v", action, err)
	}
	fmt.Printf("\n=== %s ===\n%s\n", action, result)
}
