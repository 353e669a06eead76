package routes

import (
	"contactdesk_backend/internal/handlers"
	"contactdesk_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, uploadDir string) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.ContactHandler.RegisterRoutes(api)
		appHandlers.CheckoutHandler.RegisterRoutes(api)
	}

	// Stored attachments are served directly from the upload directory.
	if uploadDir != "" {
		ginRouter.Static("/uploads", uploadDir)
		logger.Info("Static upload route registered", "dir", uploadDir)
	}
}
