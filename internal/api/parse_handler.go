package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"referent/internal/webparser"
)

type parseRequest struct {
	URL string `json:"url"`
}

// POST /api/parse
func ParseHandler(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := requestID(c)

		var req parseRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
			respondError(c, http.StatusBadRequest, msgURLRequired)
			return
		}
		target := strings.TrimSpace(req.URL)

		html, err := svc.Fetcher.Fetch(c.Request.Context(), target)
		if err != nil {
			if errors.Is(err, webparser.ErrInvalidURL) {
				respondError(c, http.StatusBadRequest, msgURLInvalid)
				return
			}
			log.Printf("[Parse] %s fetch %s failed: %v", rid, target, err)
			respondError(c, http.StatusBadGateway, msgFetchArticle)
			return
		}

		article := svc.Extractor.Extract(html)
		if article.Content == nil {
			log.Printf("[Extractor] %s no content extracted from %s", rid, target)
		}
		c.JSON(http.StatusOK, article)
	}
}
