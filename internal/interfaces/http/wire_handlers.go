package http

import (
	"github.com/orris-inc/subadmin/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	packageHandler      *handlers.PackageHandler
	purchaseHandler     *handlers.PurchaseHandler
	userHandler         *handlers.UserHandler
	analyticsHandler    *handlers.AnalyticsHandler
	notificationHandler *handlers.NotificationHandler
	healthHandler       *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	c.hdlrs = &allHandlers{
		packageHandler: handlers.NewPackageHandler(
			ucs.listPackagesUC, ucs.getPackageUC, ucs.createPackageUC,
			ucs.updatePackageUC, ucs.deletePackageUC, log,
		),
		purchaseHandler: handlers.NewPurchaseHandler(
			ucs.subscribePackageUC, ucs.listPurchasesUC, ucs.listUserPurchasesUC,
			ucs.confirmPurchaseUC, log,
		),
		userHandler:         handlers.NewUserHandler(ucs.getUserUC, ucs.listUsersUC, log),
		analyticsHandler:    handlers.NewAnalyticsHandler(ucs.purchaseTrendUC, ucs.overviewUC, log),
		notificationHandler: handlers.NewNotificationHandler(c.hub, log),
		healthHandler:       handlers.NewHealthHandler(c.sqlDB, c.version),
	}
}
