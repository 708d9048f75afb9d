package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subadmin/internal/interfaces/http/handlers"
	"github.com/orris-inc/subadmin/internal/interfaces/http/middleware"
)

// PurchaseRouteConfig holds dependencies for the caller's own purchase routes.
type PurchaseRouteConfig struct {
	PurchaseHandler     *handlers.PurchaseHandler
	NotificationHandler *handlers.NotificationHandler
}

// SetupPurchaseRoutes configures routes scoped to the calling user.
func SetupPurchaseRoutes(engine *gin.Engine, cfg *PurchaseRouteConfig) {
	purchases := engine.Group("/purchases")
	purchases.Use(middleware.RequireUser())
	{
		purchases.GET("/me", cfg.PurchaseHandler.ListMyPurchases)
	}

	notifications := engine.Group("/notifications")
	notifications.Use(middleware.RequireUser())
	{
		notifications.GET("/stream", cfg.NotificationHandler.UserStream)
	}
}
