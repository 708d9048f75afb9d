package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subadmin/internal/interfaces/http/handlers"
)

// PackageRouteConfig holds dependencies for package routes.
type PackageRouteConfig struct {
	PackageHandler  *handlers.PackageHandler
	PurchaseHandler *handlers.PurchaseHandler
	// Subscribe runs before the subscribe handler (identity, rate limit).
	Subscribe []gin.HandlerFunc
}

// SetupPackageRoutes configures public package routes.
func SetupPackageRoutes(engine *gin.Engine, cfg *PackageRouteConfig) {
	packages := engine.Group("/packages")
	{
		packages.GET("", cfg.PackageHandler.ListPackages)
		packages.GET("/:id", cfg.PackageHandler.GetPackage)

		subscribe := append(append([]gin.HandlerFunc{}, cfg.Subscribe...), cfg.PurchaseHandler.SubscribePackage)
		packages.POST("/:id/subscribe", subscribe...)
	}
}
