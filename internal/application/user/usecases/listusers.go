package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/subadmin/internal/application/user/dto"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/logger"
	"github.com/orris-inc/subadmin/internal/shared/utils"
)

type ListUsersQuery struct {
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Users    []*dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
	now      func() time.Time
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	users, total, err := uc.userRepo.List(ctx, user.ListFilter{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	now := uc.now()
	items := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		items = append(items, dto.ToUserDTO(u, now))
	}

	return &ListUsersResult{
		Users:    items,
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
