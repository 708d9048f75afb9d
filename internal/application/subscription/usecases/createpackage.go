package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/orris-inc/subadmin/internal/application/subscription/dto"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type CreatePackageCommand struct {
	Name        string
	Description string
	NumOfDays   int
	Price       uint64
}

type CreatePackageUseCase struct {
	packageRepo subscription.PackageRepository
	renderer    DescriptionRenderer
	logger      logger.Interface
}

func NewCreatePackageUseCase(
	packageRepo subscription.PackageRepository,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *CreatePackageUseCase {
	return &CreatePackageUseCase{
		packageRepo: packageRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *CreatePackageUseCase) Execute(ctx context.Context, cmd CreatePackageCommand) (*dto.PackageDTO, error) {
	pkg, err := subscription.NewPackage(cmd.Name, cmd.Description, cmd.NumOfDays, cmd.Price)
	if err != nil {
		return nil, packageValidationError(err)
	}

	if err := uc.packageRepo.Create(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to create package", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	uc.logger.Infow("package created",
		"package_sid", pkg.SID(),
		"name", pkg.Name(),
		"num_of_days", pkg.NumOfDays(),
		"price", pkg.Price(),
	)

	return renderPackage(uc.renderer, uc.logger, pkg), nil
}

// packageValidationError maps domain validation failures to 400 responses.
func packageValidationError(err error) error {
	if stderrors.Is(err, subscription.ErrInvalidPackage) {
		return errors.NewValidationError(err.Error())
	}
	return fmt.Errorf("failed to build package: %w", err)
}
