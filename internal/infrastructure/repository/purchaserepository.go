package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/db"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type PurchaseRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PurchaseMapper
	logger logger.Interface
}

func NewPurchaseRepository(db *gorm.DB, logger logger.Interface) subscription.PurchaseRepository {
	return &PurchaseRepositoryImpl{
		db:     db,
		mapper: mappers.NewPurchaseMapper(),
		logger: logger,
	}
}

func (r *PurchaseRepositoryImpl) Create(ctx context.Context, purchase *subscription.Purchase) error {
	model, err := r.mapper.ToModel(purchase)
	if err != nil {
		return fmt.Errorf("failed to convert purchase to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create purchase", "error", err, "purchase_sid", purchase.SID())
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	return purchase.SetID(model.ID)
}

func (r *PurchaseRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Purchase, error) {
	var model models.PurchaseModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get purchase by SID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PurchaseRepositoryImpl) List(ctx context.Context, filter subscription.PurchaseFilter) ([]*subscription.Purchase, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.WithContext(ctx).Model(&models.PurchaseModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	var purchaseModels []*models.PurchaseModel
	err := query.
		Scopes(db.NewestFirst(constants.TablePurchases), db.Paginate(filter.Page, filter.PageSize)).
		Find(&purchaseModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchases: %w", err)
	}

	entities, err := r.mapper.ToEntities(purchaseModels)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *PurchaseRepositoryImpl) UpdateStatus(ctx context.Context, purchase *subscription.Purchase, from vo.PurchaseStatus) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Model(&models.PurchaseModel{}).
		Where("id = ? AND status = ?", purchase.ID(), from.String()).
		Updates(map[string]interface{}{
			"status":      purchase.Status().String(),
			"reviewed_at": purchase.ReviewedAt(),
			"updated_at":  purchase.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update purchase status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrPurchaseNotPending
	}

	return nil
}

func (r *PurchaseRepositoryImpl) CountPendingByPackageID(ctx context.Context, packageID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Model(&models.PurchaseModel{}).
		Where("package_id = ? AND status = ?", packageID, vo.PurchaseStatusPending.String()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pending purchases: %w", err)
	}
	return count, nil
}

func (r *PurchaseRepositoryImpl) DetachPackage(ctx context.Context, packageID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Model(&models.PurchaseModel{}).
		Where("package_id = ?", packageID).
		Update("package_id", nil)
	if result.Error != nil {
		return fmt.Errorf("failed to detach purchases from package: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		r.logger.Infow("purchases detached from package", "package_id", packageID, "count", result.RowsAffected)
	}
	return nil
}

func (r *PurchaseRepositoryImpl) ListReviewedSince(ctx context.Context, status vo.PurchaseStatus, since time.Time) ([]*subscription.Purchase, error) {
	var purchaseModels []*models.PurchaseModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).
		Where("status = ? AND reviewed_at >= ?", status.String(), since.UTC()).
		Order("reviewed_at ASC").
		Find(&purchaseModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewed purchases: %w", err)
	}

	return r.mapper.ToEntities(purchaseModels)
}

type statusAggregate struct {
	Status  string
	Count   int64
	Revenue uint64
}

func (r *PurchaseRepositoryImpl) GetStats(ctx context.Context) (*subscription.PurchaseStats, error) {
	var rows []statusAggregate
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Model(&models.PurchaseModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(price), 0) AS revenue").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate purchases: %w", err)
	}

	stats := &subscription.PurchaseStats{}
	for _, row := range rows {
		switch vo.PurchaseStatus(row.Status) {
		case vo.PurchaseStatusPending:
			stats.Pending = row.Count
		case vo.PurchaseStatusApproved:
			stats.Approved = row.Count
			stats.ApprovedRevenue = row.Revenue
		case vo.PurchaseStatusRejected:
			stats.Rejected = row.Count
		}
	}
	return stats, nil
}
