package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/orris-inc/subadmin/internal/infrastructure/ratelimit"
	"github.com/orris-inc/subadmin/internal/interfaces/http/middleware"
	"github.com/orris-inc/subadmin/internal/interfaces/http/routes"
	"github.com/orris-inc/subadmin/internal/shared/constants"

	_ "github.com/orris-inc/subadmin/docs"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.MaxMultipartMemory = int64(c.cfg.Storage.MaxProofSizeMB) << 20

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	c.engine.Static(constants.UploadsRoutePrefix, c.cfg.Storage.UploadDir)

	routes.SetupPackageRoutes(c.engine, &routes.PackageRouteConfig{
		PackageHandler:  c.hdlrs.packageHandler,
		PurchaseHandler: c.hdlrs.purchaseHandler,
		Subscribe:       c.subscribeMiddleware(),
	})

	routes.SetupPurchaseRoutes(c.engine, &routes.PurchaseRouteConfig{
		PurchaseHandler:     c.hdlrs.purchaseHandler,
		NotificationHandler: c.hdlrs.notificationHandler,
	})

	routes.SetupAdminRoutes(c.engine, &routes.AdminRouteConfig{
		PackageHandler:      c.hdlrs.packageHandler,
		PurchaseHandler:     c.hdlrs.purchaseHandler,
		UserHandler:         c.hdlrs.userHandler,
		AnalyticsHandler:    c.hdlrs.analyticsHandler,
		NotificationHandler: c.hdlrs.notificationHandler,
	})
}

func (c *Container) subscribeMiddleware() []gin.HandlerFunc {
	chain := []gin.HandlerFunc{middleware.RequireUser()}
	if c.rateLimiter != nil && c.cfg.RateLimit.SubscribePerMinute > 0 {
		chain = append(chain, middleware.PerUserRateLimit(
			c.rateLimiter,
			"subscribe",
			ratelimit.RateLimitConfig{RequestsPerMinute: c.cfg.RateLimit.SubscribePerMinute},
			c.log,
		))
	}
	return chain
}

// Run starts the HTTP server
func (c *Container) Run(addr string) error {
	return c.engine.Run(addr)
}
