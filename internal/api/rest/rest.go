package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-minter/internal/api/middleware"
	"github.com/feral-file/ff-minter/internal/ratelimit"
)

// SetupRoutes configures all relay routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, limiter ratelimit.Limiter) {
	// Plaintext liveness probe kept for existing frontends
	router.GET("/", handler.Index)

	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// Pinning routes (authenticated only when credentials are configured)
	pin := router.Group("/", middleware.RateLimit(limiter), middleware.Auth(authCfg))
	{
		pin.POST("/upload", handler.Upload)
		pin.POST("/metadata", handler.PinMetadata)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Gallery endpoints (public read access)
		v1.GET("/tokens", handler.ListTokens)

		// On-demand gallery refresh
		v1.POST("/tokens/refresh", handler.RefreshTokens)
	}
}
