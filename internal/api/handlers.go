package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"referent/internal/config"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config, svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		models := make([]string, 0, len(svc.Images.Candidates()))
		for _, cand := range svc.Images.Candidates() {
			models = append(models, cand.Model)
		}
		// Only non-sensitive fields; keys are reported as present or not
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
			},
			"text": gin.H{
				"model":      svc.Text.Model(),
				"configured": svc.Text.Configured(),
			},
			"images": gin.H{
				"models":     models,
				"configured": svc.ImagesConfigured(),
			},
		})
	}
}
