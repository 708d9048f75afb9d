package handlers

import (
	"context"

	subdto "github.com/orris-inc/subadmin/internal/application/subscription/dto"
	"github.com/orris-inc/subadmin/internal/application/subscription/usecases"
)

// Use case interfaces for PackageHandler

type listPackagesUseCase interface {
	Execute(ctx context.Context) ([]*subdto.PackageDTO, error)
}

type getPackageUseCase interface {
	Execute(ctx context.Context, packageSID string) (*subdto.PackageDTO, error)
}

type createPackageUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePackageCommand) (*subdto.PackageDTO, error)
}

type updatePackageUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePackageCommand) (*subdto.PackageDTO, error)
}

type deletePackageUseCase interface {
	Execute(ctx context.Context, packageSID string) error
}
