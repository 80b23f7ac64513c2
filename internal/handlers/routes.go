package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"house-preview-backend/internal/config"
	"house-preview-backend/internal/logging"
	"house-preview-backend/internal/middleware"
)

// RegisterRoutes mounts the API, health and metrics endpoints. The
// processed endpoint is only mounted when a JWT secret is configured.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, previews *HousePreviewHandler, customers *CustomerHandler) {
	router.GET("/health", HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	api.GET("/house-previews", previews.List)
	api.POST("/house-previews", previews.Create)
	api.GET("/house-previews/:id", previews.Get)
	api.PUT("/house-previews/:id", previews.UpdateStatus)
	api.DELETE("/house-previews/:id", previews.Delete)

	if cfg.SupabaseJWTSecret != "" {
		api.POST("/house-previews/:id/processed", middleware.AuthMiddleware(cfg), previews.MarkProcessed)
	} else {
		logging.Warn().Msg("SUPABASE_JWT_SECRET not set, mark-as-processed endpoint disabled")
	}

	api.GET("/customers/:id/house-previews", customers.HousePreviews)
}
