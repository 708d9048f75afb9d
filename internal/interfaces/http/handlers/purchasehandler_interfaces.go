package handlers

import (
	"context"

	subdto "github.com/orris-inc/subadmin/internal/application/subscription/dto"
	"github.com/orris-inc/subadmin/internal/application/subscription/usecases"
)

// Use case interfaces for PurchaseHandler

type subscribePackageUseCase interface {
	Execute(ctx context.Context, cmd usecases.SubscribePackageCommand) (*subdto.PurchaseDTO, error)
}

type listPurchasesUseCase interface {
	Execute(ctx context.Context, query usecases.ListPurchasesQuery) (*usecases.ListPurchasesResult, error)
}

type listUserPurchasesUseCase interface {
	Execute(ctx context.Context, query usecases.ListUserPurchasesQuery) (*usecases.ListPurchasesResult, error)
}

type confirmPurchaseUseCase interface {
	Execute(ctx context.Context, cmd usecases.ConfirmPurchaseCommand) (*subdto.PurchaseDTO, error)
}
