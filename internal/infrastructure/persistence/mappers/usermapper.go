package mappers

import (
	"fmt"

	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/models"
)

// UserMapper converts between users and their persistence model.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
}

type userMapper struct{}

func NewUserMapper() UserMapper {
	return &userMapper{}
}

func (m *userMapper) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := user.ReconstructUser(
		model.ID,
		model.SID,
		model.Name,
		model.Email,
		model.Phone,
		model.ValidUntil,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user %d: %w", model.ID, err)
	}
	return entity, nil
}

func (m *userMapper) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}

	return &models.UserModel{
		ID:         entity.ID(),
		SID:        entity.SID(),
		Name:       entity.Name(),
		Email:      entity.Email(),
		Phone:      entity.Phone(),
		ValidUntil: entity.ValidUntil(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}
}
