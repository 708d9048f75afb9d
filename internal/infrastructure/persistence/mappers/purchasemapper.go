package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/models"
)

// PurchaseMapper converts between purchases and their persistence model.
type PurchaseMapper interface {
	ToEntity(model *models.PurchaseModel) (*subscription.Purchase, error)
	ToModel(entity *subscription.Purchase) (*models.PurchaseModel, error)
	ToEntities(models []*models.PurchaseModel) ([]*subscription.Purchase, error)
}

type purchaseMapper struct{}

func NewPurchaseMapper() PurchaseMapper {
	return &purchaseMapper{}
}

func (m *purchaseMapper) ToEntity(model *models.PurchaseModel) (*subscription.Purchase, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal purchase metadata: %w", err)
		}
	}

	entity, err := subscription.ReconstructPurchase(
		model.ID,
		model.SID,
		model.UserID,
		model.PackageID,
		model.PackageName,
		model.NumOfDays,
		model.Price,
		model.Status,
		model.Transition,
		metadata,
		model.ReviewedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct purchase %d: %w", model.ID, err)
	}
	return entity, nil
}

func (m *purchaseMapper) ToModel(entity *subscription.Purchase) (*models.PurchaseModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadata datatypes.JSON
	if len(entity.Metadata()) > 0 {
		raw, err := json.Marshal(entity.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal purchase metadata: %w", err)
		}
		metadata = datatypes.JSON(raw)
	}

	return &models.PurchaseModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		UserID:      entity.UserID(),
		PackageID:   entity.PackageID(),
		PackageName: entity.PackageName(),
		NumOfDays:   entity.NumOfDays(),
		Price:       entity.Price(),
		Status:      entity.Status().String(),
		Transition:  entity.Transition(),
		Metadata:    metadata,
		ReviewedAt:  entity.ReviewedAt(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *purchaseMapper) ToEntities(models []*models.PurchaseModel) ([]*subscription.Purchase, error) {
	entities := make([]*subscription.Purchase, 0, len(models))
	for _, model := range models {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
