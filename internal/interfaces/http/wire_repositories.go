package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/infrastructure/repository"
	"github.com/orris-inc/subadmin/internal/shared/db"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	packageRepo  subscription.PackageRepository
	purchaseRepo subscription.PurchaseRepository
	userRepo     user.Repository
	txMgr        *db.TransactionManager
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		packageRepo:  repository.NewPackageRepository(gdb, log),
		purchaseRepo: repository.NewPurchaseRepository(gdb, log),
		userRepo:     repository.NewUserRepository(gdb, log),
		txMgr:        db.NewTransactionManager(gdb),
	}
}
