package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subadmin/internal/shared/db"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type PackageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PackageMapper
	logger logger.Interface
}

func NewPackageRepository(db *gorm.DB, logger logger.Interface) subscription.PackageRepository {
	return &PackageRepositoryImpl{
		db:     db,
		mapper: mappers.NewPackageMapper(),
		logger: logger,
	}
}

func (r *PackageRepositoryImpl) Create(ctx context.Context, pkg *subscription.Package) error {
	model := r.mapper.ToModel(pkg)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create package", "error", err, "name", pkg.Name())
		return fmt.Errorf("failed to create package: %w", err)
	}

	return pkg.SetID(model.ID)
}

func (r *PackageRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Package, error) {
	var model models.PackageModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PackageRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Package, error) {
	var model models.PackageModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get package by SID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PackageRepositoryImpl) List(ctx context.Context) ([]*subscription.Package, error) {
	var packageModels []*models.PackageModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Order("created_at ASC, id ASC").Find(&packageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	return r.mapper.ToEntities(packageModels)
}

func (r *PackageRepositoryImpl) Update(ctx context.Context, pkg *subscription.Package) error {
	model := r.mapper.ToModel(pkg)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Model(&models.PackageModel{}).
		Where("id = ?", pkg.ID()).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"num_of_days": model.NumOfDays,
			"price":       model.Price,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update package: %w", result.Error)
	}
	// RowsAffected may be 0 when nothing changed.

	return nil
}

func (r *PackageRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Delete(&models.PackageModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete package: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrPackageNotFound
	}

	r.logger.Infow("package deleted", "package_id", id)
	return nil
}
