package mappers

import (
	"fmt"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/models"
)

// PackageMapper converts between packages and their persistence model.
type PackageMapper interface {
	ToEntity(model *models.PackageModel) (*subscription.Package, error)
	ToModel(entity *subscription.Package) *models.PackageModel
	ToEntities(models []*models.PackageModel) ([]*subscription.Package, error)
}

type packageMapper struct{}

func NewPackageMapper() PackageMapper {
	return &packageMapper{}
}

func (m *packageMapper) ToEntity(model *models.PackageModel) (*subscription.Package, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructPackage(
		model.ID,
		model.SID,
		model.Name,
		model.Description,
		model.NumOfDays,
		model.Price,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct package %d: %w", model.ID, err)
	}
	return entity, nil
}

func (m *packageMapper) ToModel(entity *subscription.Package) *models.PackageModel {
	if entity == nil {
		return nil
	}

	return &models.PackageModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		NumOfDays:   entity.NumOfDays(),
		Price:       entity.Price(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *packageMapper) ToEntities(models []*models.PackageModel) ([]*subscription.Package, error) {
	entities := make([]*subscription.Package, 0, len(models))
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
