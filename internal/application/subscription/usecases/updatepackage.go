package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subadmin/internal/application/subscription/dto"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

// UpdatePackageCommand carries a partial update; nil fields are left as is.
type UpdatePackageCommand struct {
	PackageSID  string
	Name        *string
	Description *string
	NumOfDays   *int
	Price       *uint64
}

type UpdatePackageUseCase struct {
	packageRepo subscription.PackageRepository
	renderer    DescriptionRenderer
	logger      logger.Interface
}

func NewUpdatePackageUseCase(
	packageRepo subscription.PackageRepository,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *UpdatePackageUseCase {
	return &UpdatePackageUseCase{
		packageRepo: packageRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *UpdatePackageUseCase) Execute(ctx context.Context, cmd UpdatePackageCommand) (*dto.PackageDTO, error) {
	pkg, err := uc.packageRepo.GetBySID(ctx, cmd.PackageSID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_sid", cmd.PackageSID)
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, errors.NewNotFoundError(constants.ErrMsgPackageNotFound)
	}

	if cmd.Name != nil {
		if err := pkg.UpdateName(*cmd.Name); err != nil {
			return nil, packageValidationError(err)
		}
	}
	if cmd.Description != nil {
		if err := pkg.UpdateDescription(*cmd.Description); err != nil {
			return nil, packageValidationError(err)
		}
	}
	if cmd.NumOfDays != nil {
		if err := pkg.UpdateNumOfDays(*cmd.NumOfDays); err != nil {
			return nil, packageValidationError(err)
		}
	}
	if cmd.Price != nil {
		pkg.UpdatePrice(*cmd.Price)
	}

	// Purchases keep their own snapshot, so nothing else changes here.
	if err := uc.packageRepo.Update(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to update package", "error", err, "package_sid", cmd.PackageSID)
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	uc.logger.Infow("package updated", "package_sid", pkg.SID())
	return renderPackage(uc.renderer, uc.logger, pkg), nil
}
