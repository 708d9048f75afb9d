package http

import (
	"time"

	analyticsUsecases "github.com/orris-inc/subadmin/internal/application/analytics/usecases"
	subscriptionUsecases "github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	userUsecases "github.com/orris-inc/subadmin/internal/application/user/usecases"
	"github.com/orris-inc/subadmin/internal/shared/biztime"
	"github.com/orris-inc/subadmin/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Packages
	listPackagesUC  *subscriptionUsecases.ListPackagesUseCase
	getPackageUC    *subscriptionUsecases.GetPackageUseCase
	createPackageUC *subscriptionUsecases.CreatePackageUseCase
	updatePackageUC *subscriptionUsecases.UpdatePackageUseCase
	deletePackageUC *subscriptionUsecases.DeletePackageUseCase

	// Purchases
	subscribePackageUC  *subscriptionUsecases.SubscribePackageUseCase
	listPurchasesUC     *subscriptionUsecases.ListPurchasesUseCase
	listUserPurchasesUC *subscriptionUsecases.ListUserPurchasesUseCase
	confirmPurchaseUC   *subscriptionUsecases.ConfirmPurchaseUseCase

	// Users
	getUserUC   *userUsecases.GetUserUseCase
	listUsersUC *userUsecases.ListUsersUseCase

	// Analytics
	purchaseTrendUC *analyticsUsecases.GetPurchaseTrendUseCase
	overviewUC      *analyticsUsecases.GetOverviewUseCase
}

// initUseCases wires use cases to repositories, proof storage and the
// purchase event dispatcher.
func (c *Container) initUseCases() {
	log := c.log
	repos := c.repos

	renderer := markdown.NewMarkdownService()

	timeout := time.Duration(c.cfg.Notification.TimeoutSeconds) * time.Second
	events := subscriptionUsecases.NewEventDispatcher(c.notifier, timeout, log)

	c.ucs = &allUseCases{
		listPackagesUC:  subscriptionUsecases.NewListPackagesUseCase(repos.packageRepo, renderer, log),
		getPackageUC:    subscriptionUsecases.NewGetPackageUseCase(repos.packageRepo, renderer, log),
		createPackageUC: subscriptionUsecases.NewCreatePackageUseCase(repos.packageRepo, renderer, log),
		updatePackageUC: subscriptionUsecases.NewUpdatePackageUseCase(repos.packageRepo, renderer, log),
		deletePackageUC: subscriptionUsecases.NewDeletePackageUseCase(repos.packageRepo, repos.purchaseRepo, repos.txMgr, log),

		subscribePackageUC: subscriptionUsecases.NewSubscribePackageUseCase(
			repos.packageRepo, repos.purchaseRepo, repos.userRepo, c.proofStorage, events, log,
		),
		listPurchasesUC: subscriptionUsecases.NewListPurchasesUseCase(
			repos.purchaseRepo, repos.userRepo, c.proofStorage, log,
		),
		listUserPurchasesUC: subscriptionUsecases.NewListUserPurchasesUseCase(
			repos.purchaseRepo, repos.userRepo, c.proofStorage, log,
		),
		confirmPurchaseUC: subscriptionUsecases.NewConfirmPurchaseUseCase(
			repos.purchaseRepo, repos.userRepo, repos.txMgr, c.proofStorage, events, log,
		),

		getUserUC:   userUsecases.NewGetUserUseCase(repos.userRepo, log),
		listUsersUC: userUsecases.NewListUsersUseCase(repos.userRepo, log),

		purchaseTrendUC: analyticsUsecases.NewGetPurchaseTrendUseCase(repos.purchaseRepo, biztime.Location(), log),
		overviewUC:      analyticsUsecases.NewGetOverviewUseCase(repos.packageRepo, repos.purchaseRepo, repos.userRepo, log),
	}
}
