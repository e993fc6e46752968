package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"referent/internal/imagegen"
	"referent/internal/llm"
)

type summarizeRequest struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

type textRequest struct {
	Text string `json:"text"`
}

// POST /api/summarize
func SummarizeHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := requestID(c)

		var req summarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			respondError(c, http.StatusBadRequest, msgNoText)
			return
		}
		action, err := llm.ParseAction(req.Action)
		if err != nil {
			respondError(c, http.StatusBadRequest, msgChooseAction)
			return
		}
		if !svc.Text.Configured() {
			log.Printf("[Summarize] %s OPENROUTER_API_KEY is not set", rid)
			respondError(c, http.StatusServiceUnavailable, msgUnavailable)
			return
		}

		result, err := svc.Actions.Run(c.Request.Context(), action, req.Text)
		if err != nil {
			log.Printf("[Summarize] %s action %s failed: %v", rid, action, err)
			respondError(c, http.StatusBadGateway, msgGenerateFailed)
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": result})
	}
}

// POST /api/translate
func TranslateHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := requestID(c)

		var req textRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			respondError(c, http.StatusBadRequest, msgNoTranslateText)
			return
		}
		if !svc.Text.Configured() {
			log.Printf("[Translate] %s OPENROUTER_API_KEY is not set", rid)
			respondError(c, http.StatusServiceUnavailable, msgTranslateUnavailable)
			return
		}

		translation, err := svc.Actions.Translate(c.Request.Context(), req.Text)
		if err != nil {
			log.Printf("[Translate] %s failed: %v", rid, err)
			respondError(c, http.StatusBadGateway, msgTranslateFailed)
			return
		}
		c.JSON(http.StatusOK, gin.H{"translation": translation})
	}
}

// POST /api/illustrate
func IllustrateHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := requestID(c)

		var req textRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			respondError(c, http.StatusBadRequest, msgNoIllustrateText)
			return
		}
		if !svc.Text.Configured() {
			log.Printf("[Illustrate] %s OPENROUTER_API_KEY is not set", rid)
			respondError(c, http.StatusServiceUnavailable, msgUnavailable)
			return
		}
		if !svc.ImagesConfigured() {
			log.Printf("[Illustrate] %s HUGGINGFACE_API_KEY is not set", rid)
			respondError(c, http.StatusServiceUnavailable, msgImageKeyMissing)
			return
		}

		out, err := svc.Illustrator.Illustrate(c.Request.Context(), req.Text, svc.imageKey)
		if err != nil {
			var failure *imagegen.Failure
			switch {
			case errors.Is(err, imagegen.ErrPromptFailed):
				log.Printf("[Illustrate] %s prompt failed: %v", rid, err)
				respondError(c, http.StatusBadGateway, msgPromptFailed)
			case errors.As(err, &failure):
				log.Printf("[Illustrate] %s no image for prompt %q: %v (last model %s)", rid, out.Prompt, err, failure.Model)
				respondError(c, http.StatusServiceUnavailable, imageFailureMessage(failure))
			default:
				log.Printf("[Illustrate] %s failed: %v", rid, err)
				respondError(c, http.StatusBadGateway, msgIllustrateFailed)
			}
			return
		}

		log.Printf("[Illustrate] %s %d bytes of %s for prompt %q", rid, len(out.Image.Data), out.Image.MimeType, out.Prompt)
		c.JSON(http.StatusOK, gin.H{
			"image":  out.Image.DataURI(),
			"prompt": out.Prompt,
		})
	}
}
