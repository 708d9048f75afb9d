package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subadmin/internal/application/subscription/dto"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type ListPackagesUseCase struct {
	packageRepo subscription.PackageRepository
	renderer    DescriptionRenderer
	logger      logger.Interface
}

func NewListPackagesUseCase(
	packageRepo subscription.PackageRepository,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *ListPackagesUseCase {
	return &ListPackagesUseCase{
		packageRepo: packageRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *ListPackagesUseCase) Execute(ctx context.Context) ([]*dto.PackageDTO, error) {
	packages, err := uc.packageRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list packages", "error", err)
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	result := make([]*dto.PackageDTO, 0, len(packages))
	for _, pkg := range packages {
		result = append(result, renderPackage(uc.renderer, uc.logger, pkg))
	}
	return result, nil
}
