package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subadmin/internal/shared/db"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return u.SetID(model.ID)
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	return r.first(ctx, "sid = ?", sid)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepositoryImpl) first(ctx context.Context, cond string, arg interface{}) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *UserRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	result := make(map[uint]*user.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var userModels []*models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Where("id IN ?", ids).Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}

	for _, model := range userModels {
		entity, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, err
		}
		result[entity.ID()] = entity
	}
	return result, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.WithContext(ctx).Model(&models.UserModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var userModels []*models.UserModel
	if err := query.Order("id ASC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&userModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		entity, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, entity)
	}
	return users, total, nil
}

func (r *UserRepositoryImpl) UpdateValidUntil(ctx context.Context, u *user.User) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"valid_until": u.ValidUntil(),
			"updated_at":  u.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user validity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d not found", u.ID())
	}

	r.logger.Infow("user validity updated", "user_id", u.ID(), "valid_until", u.ValidUntil())
	return nil
}

func (r *UserRepositoryImpl) CountActive(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Model(&models.UserModel{}).
		Where("valid_until > ?", now.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}
