package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type OverviewResult struct {
	Packages          int    `json:"packages"`
	PendingPurchases  int64  `json:"pending_purchases"`
	ApprovedPurchases int64  `json:"approved_purchases"`
	RejectedPurchases int64  `json:"rejected_purchases"`
	ApprovedRevenue   uint64 `json:"approved_revenue"`
	ActiveSubscribers int64  `json:"active_subscribers"`
}

type GetOverviewUseCase struct {
	packageRepo  subscription.PackageRepository
	purchaseRepo subscription.PurchaseRepository
	userRepo     user.Repository
	logger       logger.Interface
	now          func() time.Time
}

func NewGetOverviewUseCase(
	packageRepo subscription.PackageRepository,
	purchaseRepo subscription.PurchaseRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		packageRepo:  packageRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *GetOverviewUseCase) Execute(ctx context.Context) (*OverviewResult, error) {
	packages, err := uc.packageRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list packages", "error", err)
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	stats, err := uc.purchaseRepo.GetStats(ctx)
	if err != nil {
		uc.logger.Errorw("failed to get purchase stats", "error", err)
		return nil, fmt.Errorf("failed to get purchase stats: %w", err)
	}

	active, err := uc.userRepo.CountActive(ctx, uc.now().UTC())
	if err != nil {
		uc.logger.Errorw("failed to count active subscribers", "error", err)
		return nil, fmt.Errorf("failed to count active subscribers: %w", err)
	}

	return &OverviewResult{
		Packages:          len(packages),
		PendingPurchases:  stats.Pending,
		ApprovedPurchases: stats.Approved,
		RejectedPurchases: stats.Rejected,
		ApprovedRevenue:   stats.ApprovedRevenue,
		ActiveSubscribers: active,
	}, nil
}
