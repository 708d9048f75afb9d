package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/models"
)

func TestPurchaseMapper_KeepsSnapshotMetadata(t *testing.T) {
	now := time.Now().UTC()
	pkg, err := subscription.ReconstructPackage(3, "pkg_abc", "Monthly", "", 30, 10, now, now)
	require.NoError(t, err)
	purchase, err := subscription.NewPurchase(9, pkg, "proof.png")
	require.NoError(t, err)

	mapper := NewPurchaseMapper()
	model, err := mapper.ToModel(purchase)
	require.NoError(t, err)
	assert.JSONEq(t, `{"package_sid":"pkg_abc"}`, string(model.Metadata))
	assert.Equal(t, "PENDING", model.Status)

	model.ID = 1
	entity, err := mapper.ToEntity(model)
	require.NoError(t, err)
	assert.Equal(t, "pkg_abc", entity.Metadata()["package_sid"])
	assert.Equal(t, vo.PurchaseStatusPending, entity.Status())
}

func TestPurchaseMapper_RejectsUnknownStatus(t *testing.T) {
	_, err := NewPurchaseMapper().ToEntity(&models.PurchaseModel{ID: 1, Status: "LOST"})
	assert.Error(t, err)
}

func TestPurchaseMapper_RejectsBrokenMetadata(t *testing.T) {
	_, err := NewPurchaseMapper().ToEntity(&models.PurchaseModel{ID: 1, Status: "PENDING", Metadata: []byte("{")})
	assert.Error(t, err)
}
