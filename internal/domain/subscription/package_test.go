package subscription

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newValidPackage(t *testing.T) *Package {
	t.Helper()
	pkg, err := NewPackage("Monthly", "30 days of access", 30, 10)
	require.NoError(t, err)
	require.NoError(t, pkg.SetID(1))
	return pkg
}

// =====================================================================
// TestNewPackage_*
// =====================================================================

func TestNewPackage_ValidInput(t *testing.T) {
	pkg, err := NewPackage("  Monthly  ", "30 days", 30, 1000)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pkg.SID(), "pkg_"))
	assert.Equal(t, "Monthly", pkg.Name())
	assert.Equal(t, "30 days", pkg.Description())
	assert.Equal(t, 30, pkg.NumOfDays())
	assert.Equal(t, uint64(1000), pkg.Price())
	assert.Zero(t, pkg.ID())
}

func TestNewPackage_FreePackageAllowed(t *testing.T) {
	pkg, err := NewPackage("Trial", "", 7, 0)

	require.NoError(t, err)
	assert.Zero(t, pkg.Price())
}

func TestNewPackage_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		pkgName     string
		description string
		days        int
	}{
		{"empty name", "", "", 30},
		{"blank name", "   ", "", 30},
		{"name too long", strings.Repeat("a", MaxPackageNameLength+1), "", 30},
		{"description too long", "ok", strings.Repeat("d", MaxPackageDescriptionLength+1), 30},
		{"zero days", "ok", "", 0},
		{"negative days", "ok", "", -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPackage(tc.pkgName, tc.description, tc.days, 10)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPackage))
		})
	}
}

// =====================================================================
// TestPackage_Update*
// =====================================================================

func TestPackage_Updates(t *testing.T) {
	pkg := newValidPackage(t)
	before := pkg.UpdatedAt()
	time.Sleep(time.Millisecond)

	require.NoError(t, pkg.UpdateName("Quarterly"))
	require.NoError(t, pkg.UpdateNumOfDays(90))
	require.NoError(t, pkg.UpdateDescription("90 days"))
	pkg.UpdatePrice(25)

	assert.Equal(t, "Quarterly", pkg.Name())
	assert.Equal(t, 90, pkg.NumOfDays())
	assert.Equal(t, "90 days", pkg.Description())
	assert.Equal(t, uint64(25), pkg.Price())
	assert.True(t, pkg.UpdatedAt().After(before))
}

func TestPackage_UpdateRejectsInvalidValues(t *testing.T) {
	pkg := newValidPackage(t)

	assert.Error(t, pkg.UpdateName(""))
	assert.Error(t, pkg.UpdateNumOfDays(0))
	assert.Equal(t, "Monthly", pkg.Name())
	assert.Equal(t, 30, pkg.NumOfDays())
}

func TestPackage_SetID(t *testing.T) {
	pkg, err := NewPackage("Monthly", "", 30, 10)
	require.NoError(t, err)

	assert.Error(t, pkg.SetID(0))
	require.NoError(t, pkg.SetID(7))
	assert.Error(t, pkg.SetID(8))
	assert.Equal(t, uint(7), pkg.ID())
}

func TestReconstructPackage_RequiresIdentity(t *testing.T) {
	now := time.Now()

	_, err := ReconstructPackage(0, "pkg_x", "n", "", 1, 1, now, now)
	assert.Error(t, err)

	_, err = ReconstructPackage(1, "", "n", "", 1, 1, now, now)
	assert.Error(t, err)
}
