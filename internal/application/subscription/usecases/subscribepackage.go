package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/orris-inc/subadmin/internal/application/subscription/dto"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type SubscribePackageCommand struct {
	UserSID    string
	PackageSID string
	Proof      *ProofUpload
}

type SubscribePackageUseCase struct {
	packageRepo  subscription.PackageRepository
	purchaseRepo subscription.PurchaseRepository
	userRepo     user.Repository
	storage      ProofStorage
	events       *EventDispatcher
	logger       logger.Interface
}

func NewSubscribePackageUseCase(
	packageRepo subscription.PackageRepository,
	purchaseRepo subscription.PurchaseRepository,
	userRepo user.Repository,
	storage ProofStorage,
	events *EventDispatcher,
	logger logger.Interface,
) *SubscribePackageUseCase {
	return &SubscribePackageUseCase{
		packageRepo:  packageRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		storage:      storage,
		events:       events,
		logger:       logger,
	}
}

func (uc *SubscribePackageUseCase) Execute(ctx context.Context, cmd SubscribePackageCommand) (*dto.PurchaseDTO, error) {
	pkg, err := uc.packageRepo.GetBySID(ctx, cmd.PackageSID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_sid", cmd.PackageSID)
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, errors.NewNotFoundError(constants.ErrMsgPackageNotFound)
	}

	subscriber, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_sid", cmd.UserSID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if subscriber == nil {
		return nil, errors.NewNotFoundError(constants.ErrMsgUserNotFound)
	}

	if cmd.Proof == nil || cmd.Proof.Content == nil {
		return nil, errors.NewValidationError("proof of payment is required")
	}

	filename, err := uc.storage.Save(ctx, *cmd.Proof)
	if err != nil {
		if stderrors.Is(err, subscription.ErrInvalidProof) {
			return nil, errors.NewValidationError("Invalid proof of payment", err.Error())
		}
		uc.logger.Errorw("failed to store proof of payment", "error", err, "user_sid", cmd.UserSID)
		return nil, fmt.Errorf("failed to store proof of payment: %w", err)
	}

	purchase, err := subscription.NewPurchase(subscriber.ID(), pkg, filename)
	if err != nil {
		uc.discardProof(ctx, filename)
		return nil, fmt.Errorf("failed to build purchase: %w", err)
	}

	if err := uc.purchaseRepo.Create(ctx, purchase); err != nil {
		uc.discardProof(ctx, filename)
		uc.logger.Errorw("failed to create purchase", "error", err,
			"user_sid", cmd.UserSID, "package_sid", cmd.PackageSID)
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	uc.logger.Infow("purchase submitted",
		"purchase_sid", purchase.SID(),
		"user_sid", subscriber.SID(),
		"package_sid", pkg.SID(),
		"price", purchase.Price(),
	)

	proofURL := uc.storage.URL(filename)
	uc.events.NewPurchase(newPurchaseEvent(purchase, subscriber, proofURL))
	uc.events.PurchaseStatus(purchaseStatusEvent(purchase, subscriber, purchase.CreatedAt()))

	return dto.ToPurchaseDTO(purchase, subscriber, proofURL), nil
}

func (uc *SubscribePackageUseCase) discardProof(ctx context.Context, filename string) {
	if err := uc.storage.Delete(ctx, filename); err != nil {
		uc.logger.Warnw("failed to remove orphaned proof file", "error", err, "file", filename)
	}
}
