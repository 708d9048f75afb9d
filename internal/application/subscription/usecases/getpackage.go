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

type GetPackageUseCase struct {
	packageRepo subscription.PackageRepository
	renderer    DescriptionRenderer
	logger      logger.Interface
}

func NewGetPackageUseCase(
	packageRepo subscription.PackageRepository,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *GetPackageUseCase {
	return &GetPackageUseCase{
		packageRepo: packageRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *GetPackageUseCase) Execute(ctx context.Context, packageSID string) (*dto.PackageDTO, error) {
	pkg, err := uc.packageRepo.GetBySID(ctx, packageSID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_sid", packageSID)
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, errors.NewNotFoundError(constants.ErrMsgPackageNotFound)
	}

	return renderPackage(uc.renderer, uc.logger, pkg), nil
}
