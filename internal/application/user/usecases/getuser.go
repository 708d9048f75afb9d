package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/subadmin/internal/application/user/dto"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
	now      func() time.Time
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, userSID string) (*dto.UserDTO, error) {
	u, err := uc.userRepo.GetBySID(ctx, userSID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_sid", userSID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError(constants.ErrMsgUserNotFound)
	}

	return dto.ToUserDTO(u, uc.now()), nil
}
