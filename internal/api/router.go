package api

import (
	"github.com/gin-gonic/gin"

	"referent/internal/config"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	svc := NewServices(cfg)
	r := gin.Default()
	r.Use(RequestID())

	subpath := cfg.Server.Subpath // "" or e.g. "/referent"

	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg, svc))

		// --- Article ---
		group.POST("/api/parse", ParseHandler(svc))

		// --- Text generation ---
		group.POST("/api/summarize", SummarizeHandler(svc))
		group.POST("/api/translate", TranslateHandler(svc))

		// --- Illustration ---
		group.POST("/api/illustrate", IllustrateHandler(svc))
	}
	return r
}
