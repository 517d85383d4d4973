package http

import (
	"time"

	"tetris_webapp/internal/config"
	"tetris_webapp/internal/http/handlers"
	"tetris_webapp/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CORS для фронта на другом домене. пустой список - любой origin
func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cors.New(cc)
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, wsHandler *ws.WSHandler, cfg *config.Config) {
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/scores", h.GetScores)
		api.POST("/scores", h.PostScore)
	}

	r.GET("/ws/play", wsHandler.HandlePlay())
}
