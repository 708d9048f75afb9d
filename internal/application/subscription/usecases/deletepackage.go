package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type DeletePackageUseCase struct {
	packageRepo  subscription.PackageRepository
	purchaseRepo subscription.PurchaseRepository
	txMgr        TransactionRunner
	logger       logger.Interface
}

func NewDeletePackageUseCase(
	packageRepo subscription.PackageRepository,
	purchaseRepo subscription.PurchaseRepository,
	txMgr TransactionRunner,
	logger logger.Interface,
) *DeletePackageUseCase {
	return &DeletePackageUseCase{
		packageRepo:  packageRepo,
		purchaseRepo: purchaseRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *DeletePackageUseCase) Execute(ctx context.Context, packageSID string) error {
	pkg, err := uc.packageRepo.GetBySID(ctx, packageSID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_sid", packageSID)
		return fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return errors.NewNotFoundError(constants.ErrMsgPackageNotFound)
	}

	packageID := pkg.ID()
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		pending, err := uc.purchaseRepo.CountPendingByPackageID(txCtx, packageID)
		if err != nil {
			uc.logger.Errorw("failed to count pending purchases", "error", err, "package_id", packageID)
			return fmt.Errorf("failed to check package usage: %w", err)
		}
		if pending > 0 {
			return errors.NewConflictError(constants.ErrMsgPackageHasPending,
				fmt.Sprintf("%d pending purchases", pending))
		}

		// Reviewed purchases keep their snapshot without the reference.
		if err := uc.purchaseRepo.DetachPackage(txCtx, packageID); err != nil {
			uc.logger.Errorw("failed to detach purchases", "error", err, "package_id", packageID)
			return fmt.Errorf("failed to detach purchases: %w", err)
		}

		if err := uc.packageRepo.Delete(txCtx, packageID); err != nil {
			uc.logger.Errorw("failed to delete package", "error", err, "package_id", packageID)
			return fmt.Errorf("failed to delete package: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("package deleted successfully", "package_id", packageID, "package_sid", packageSID)
	return nil
}
