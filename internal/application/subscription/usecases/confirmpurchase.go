package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/orris-inc/subadmin/internal/application/subscription/dto"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type ConfirmPurchaseCommand struct {
	PurchaseSID string
	Reject      bool
}

// ConfirmPurchaseUseCase approves or rejects a pending purchase. Approval
// updates the purchase and extends the user's validity in one transaction.
type ConfirmPurchaseUseCase struct {
	purchaseRepo subscription.PurchaseRepository
	userRepo     user.Repository
	txMgr        TransactionRunner
	storage      ProofStorage
	events       *EventDispatcher
	logger       logger.Interface
	now          func() time.Time
}

func NewConfirmPurchaseUseCase(
	purchaseRepo subscription.PurchaseRepository,
	userRepo user.Repository,
	txMgr TransactionRunner,
	storage ProofStorage,
	events *EventDispatcher,
	logger logger.Interface,
) *ConfirmPurchaseUseCase {
	return &ConfirmPurchaseUseCase{
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		storage:      storage,
		events:       events,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *ConfirmPurchaseUseCase) Execute(ctx context.Context, cmd ConfirmPurchaseCommand) (*dto.PurchaseDTO, error) {
	purchase, err := uc.purchaseRepo.GetBySID(ctx, cmd.PurchaseSID)
	if err != nil {
		uc.logger.Errorw("failed to get purchase", "error", err, "purchase_sid", cmd.PurchaseSID)
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	if purchase == nil {
		return nil, errors.NewBadRequestError(constants.ErrMsgSomethingWentWrong, "purchase not found")
	}
	if !purchase.IsPending() {
		return nil, alreadyReviewedError(purchase.Status())
	}

	now := uc.now().UTC()

	var subscriber *user.User
	if cmd.Reject {
		subscriber, err = uc.reject(ctx, purchase, now)
	} else {
		subscriber, err = uc.approve(ctx, purchase, now)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("purchase reviewed",
		"purchase_sid", purchase.SID(),
		"status", purchase.Status(),
		"user_id", purchase.UserID(),
	)

	uc.events.PurchaseStatus(purchaseStatusEvent(purchase, subscriber, now))

	return dto.ToPurchaseDTO(purchase, subscriber, uc.storage.URL(purchase.Transition())), nil
}

func (uc *ConfirmPurchaseUseCase) reject(ctx context.Context, purchase *subscription.Purchase, now time.Time) (*user.User, error) {
	if err := purchase.Reject(now); err != nil {
		return nil, alreadyReviewedError(purchase.Status())
	}
	if err := uc.purchaseRepo.UpdateStatus(ctx, purchase, vo.PurchaseStatusPending); err != nil {
		return nil, uc.statusUpdateError(err, purchase)
	}

	// The user is only needed to address the notification.
	subscriber, err := uc.userRepo.GetByID(ctx, purchase.UserID())
	if err != nil {
		uc.logger.Warnw("failed to load user for rejection notice", "error", err, "user_id", purchase.UserID())
		return nil, nil
	}
	return subscriber, nil
}

func (uc *ConfirmPurchaseUseCase) approve(ctx context.Context, purchase *subscription.Purchase, now time.Time) (*user.User, error) {
	var subscriber *user.User

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		u, err := uc.userRepo.GetByID(txCtx, purchase.UserID())
		if err != nil {
			uc.logger.Errorw("failed to get user", "error", err, "user_id", purchase.UserID())
			return fmt.Errorf("failed to get user: %w", err)
		}
		if u == nil {
			return errors.NewNotFoundError(constants.ErrMsgUserNotFound)
		}

		if err := purchase.Approve(now); err != nil {
			return alreadyReviewedError(purchase.Status())
		}
		// Conditional on PENDING so that only one concurrent review wins.
		if err := uc.purchaseRepo.UpdateStatus(txCtx, purchase, vo.PurchaseStatusPending); err != nil {
			return uc.statusUpdateError(err, purchase)
		}

		if _, err := u.ExtendValidity(purchase.NumOfDays(), now); err != nil {
			return fmt.Errorf("failed to extend validity: %w", err)
		}
		if err := uc.userRepo.UpdateValidUntil(txCtx, u); err != nil {
			uc.logger.Errorw("failed to update user validity", "error", err, "user_id", u.ID())
			return fmt.Errorf("failed to update user validity: %w", err)
		}

		subscriber = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("subscription extended",
		"user_sid", subscriber.SID(),
		"num_of_days", purchase.NumOfDays(),
		"valid_until", subscriber.ValidUntil(),
	)
	return subscriber, nil
}

func (uc *ConfirmPurchaseUseCase) statusUpdateError(err error, purchase *subscription.Purchase) error {
	if stderrors.Is(err, subscription.ErrPurchaseNotPending) {
		return errors.NewBadRequestError(constants.ErrMsgSomethingWentWrong, "purchase already reviewed")
	}
	uc.logger.Errorw("failed to update purchase status", "error", err, "purchase_sid", purchase.SID())
	return fmt.Errorf("failed to update purchase status: %w", err)
}

func alreadyReviewedError(status vo.PurchaseStatus) error {
	return errors.NewBadRequestError(constants.ErrMsgSomethingWentWrong,
		fmt.Sprintf("purchase already %s", status))
}
