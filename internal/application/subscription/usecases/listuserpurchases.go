package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
	"github.com/orris-inc/subadmin/internal/shared/utils"
)

type ListUserPurchasesQuery struct {
	UserSID  string
	Page     int
	PageSize int
}

type ListUserPurchasesUseCase struct {
	purchaseRepo subscription.PurchaseRepository
	userRepo     user.Repository
	storage      ProofStorage
	logger       logger.Interface
}

func NewListUserPurchasesUseCase(
	purchaseRepo subscription.PurchaseRepository,
	userRepo user.Repository,
	storage ProofStorage,
	logger logger.Interface,
) *ListUserPurchasesUseCase {
	return &ListUserPurchasesUseCase{
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		storage:      storage,
		logger:       logger,
	}
}

func (uc *ListUserPurchasesUseCase) Execute(ctx context.Context, query ListUserPurchasesQuery) (*ListPurchasesResult, error) {
	owner, err := uc.userRepo.GetBySID(ctx, query.UserSID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_sid", query.UserSID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, errors.NewNotFoundError(constants.ErrMsgUserNotFound)
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	userID := owner.ID()
	return listPurchases(ctx, uc.purchaseRepo, uc.userRepo, uc.storage, uc.logger, subscription.PurchaseFilter{
		UserID:   &userID,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
}
