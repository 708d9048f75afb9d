package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subadmin/internal/interfaces/http/handlers"
)

// AdminRouteConfig holds dependencies for admin routes. Access to /admin is
// restricted by the upstream gateway.
type AdminRouteConfig struct {
	PackageHandler      *handlers.PackageHandler
	PurchaseHandler     *handlers.PurchaseHandler
	UserHandler         *handlers.UserHandler
	AnalyticsHandler    *handlers.AnalyticsHandler
	NotificationHandler *handlers.NotificationHandler
}

// SetupAdminRoutes configures admin-only routes.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")

	packages := admin.Group("/packages")
	{
		packages.POST("", cfg.PackageHandler.CreatePackage)
		packages.PUT("/:id", cfg.PackageHandler.UpdatePackage)
		packages.DELETE("/:id", cfg.PackageHandler.DeletePackage)
	}

	purchases := admin.Group("/purchases")
	{
		purchases.GET("", cfg.PurchaseHandler.ListPurchases)
		purchases.POST("/:id/confirm", cfg.PurchaseHandler.ConfirmPurchase)
	}

	users := admin.Group("/users")
	{
		users.GET("", cfg.UserHandler.ListUsers)
		users.GET("/:id", cfg.UserHandler.GetUser)
	}

	analytics := admin.Group("/analytics")
	{
		analytics.GET("/trend", cfg.AnalyticsHandler.GetPurchaseTrend)
		analytics.GET("/overview", cfg.AnalyticsHandler.GetOverview)
	}

	admin.GET("/notifications/stream", cfg.NotificationHandler.AdminStream)
}
