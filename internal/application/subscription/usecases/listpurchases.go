package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subadmin/internal/application/subscription/dto"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
	"github.com/orris-inc/subadmin/internal/shared/utils"
)

type ListPurchasesQuery struct {
	Status   string
	Page     int
	PageSize int
}

type ListPurchasesResult struct {
	Purchases []*dto.PurchaseDTO
	Total     int64
	Page      int
	PageSize  int
}

type ListPurchasesUseCase struct {
	purchaseRepo subscription.PurchaseRepository
	userRepo     user.Repository
	storage      ProofStorage
	logger       logger.Interface
}

func NewListPurchasesUseCase(
	purchaseRepo subscription.PurchaseRepository,
	userRepo user.Repository,
	storage ProofStorage,
	logger logger.Interface,
) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		storage:      storage,
		logger:       logger,
	}
}

func (uc *ListPurchasesUseCase) Execute(ctx context.Context, query ListPurchasesQuery) (*ListPurchasesResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	filter := subscription.PurchaseFilter{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if query.Status != "" {
		status, ok := vo.ParsePurchaseStatus(query.Status)
		if !ok {
			return nil, errors.NewValidationError(
				fmt.Sprintf("invalid status %q, expected PENDING, APPROVED or REJECTED", query.Status))
		}
		filter.Status = &status
	}

	return listPurchases(ctx, uc.purchaseRepo, uc.userRepo, uc.storage, uc.logger, filter)
}

// listPurchases loads one page of purchases together with their users.
func listPurchases(
	ctx context.Context,
	purchaseRepo subscription.PurchaseRepository,
	userRepo user.Repository,
	storage ProofStorage,
	log logger.Interface,
	filter subscription.PurchaseFilter,
) (*ListPurchasesResult, error) {
	purchases, total, err := purchaseRepo.List(ctx, filter)
	if err != nil {
		log.Errorw("failed to list purchases", "error", err)
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	userIDs := make([]uint, 0, len(purchases))
	seen := make(map[uint]struct{}, len(purchases))
	for _, p := range purchases {
		if _, ok := seen[p.UserID()]; ok {
			continue
		}
		seen[p.UserID()] = struct{}{}
		userIDs = append(userIDs, p.UserID())
	}

	users, err := userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		log.Errorw("failed to load purchase users", "error", err)
		return nil, fmt.Errorf("failed to load purchase users: %w", err)
	}

	items := make([]*dto.PurchaseDTO, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, dto.ToPurchaseDTO(p, users[p.UserID()], storage.URL(p.Transition())))
	}

	return &ListPurchasesResult{
		Purchases: items,
		Total:     total,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}, nil
}
