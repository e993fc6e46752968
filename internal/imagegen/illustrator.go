package imagegen

import (
	"context"
	"errors"
	"fmt"

	"referent/internal/llm"
)

const (
	// PromptSystem asks for a short English text-to-image prompt.
	PromptSystem = "You are an expert at writing short image generation prompts. Based on the article text, write a single English prompt for a text-to-image model (e.g. Stable Diffusion, FLUX). The prompt should describe one clear, visual scene that captures the main idea of the article. Use 10-15 words max. Output only the prompt, no quotes or explanation."

	DefaultPrompt = "Abstract concept, digital art, vivid colors"

	excerptRunes      = 3000
	promptMaxTokens   = 100
	promptTemperature = 0.5
)

// Generator is satisfied by *Client.
type Generator interface {
	Generate(ctx context.Context, prompt, credential string) (Image, error)
}

// Illustration is an image together with the prompt that produced it.
type Illustration struct {
	Image  Image
	Prompt string
}

// Illustrator turns article text into a picture: a scene prompt from the
// text model, then the image fallback chain.
type Illustrator struct {
	completer llm.Completer
	images    Generator
}

func NewIllustrator(completer llm.Completer, images Generator) *Illustrator {
	return &Illustrator{completer: completer, images: images}
}

// Illustrate returns ErrPromptFailed (wrapped) when the text model fails and
// a *Failure when no image model succeeds.
func (i *Illustrator) Illustrate(ctx context.Context, articleText, credential string) (Illustration, error) {
	prompt, err := i.ScenePrompt(ctx, articleText)
	if err != nil {
		return Illustration{}, err
	}
	img, err := i.images.Generate(ctx, prompt, credential)
	if err != nil {
		return Illustration{Prompt: prompt}, err
	}
	return Illustration{Image: img, Prompt: prompt}, nil
}

// ScenePrompt asks the text model for a 10-15 word scene description of
// the first 3000 characters of the article. A blank or missing completion
// falls back to DefaultPrompt.
func (i *Illustrator) ScenePrompt(ctx context.Context, articleText string) (string, error) {
	user := "Article excerpt:\n\n" + truncateRunes(articleText, excerptRunes)
	prompt, err := i.completer.Complete(ctx, PromptSystem, user, promptMaxTokens, promptTemperature)
	if errors.Is(err, llm.ErrMalformedResponse) {
		return DefaultPrompt, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPromptFailed, err)
	}
	if prompt == "" {
		return DefaultPrompt, nil
	}
	return prompt, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
