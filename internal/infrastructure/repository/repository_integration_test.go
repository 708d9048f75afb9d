package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subadmin/internal/shared/db"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every :memory: connection is its own database.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&models.PackageModel{}, &models.PurchaseModel{}, &models.UserModel{}))
	return gdb
}

type repos struct {
	packages  subscription.PackageRepository
	purchases subscription.PurchaseRepository
	users     user.Repository
	txMgr     *db.TransactionManager
}

func newRepos(t *testing.T) repos {
	gdb := setupTestDB(t)
	log := logger.NewLogger()
	return repos{
		packages:  NewPackageRepository(gdb, log),
		purchases: NewPurchaseRepository(gdb, log),
		users:     NewUserRepository(gdb, log),
		txMgr:     db.NewTransactionManager(gdb),
	}
}

func createPackage(t *testing.T, r repos, name string, days int, price uint64) *subscription.Package {
	t.Helper()
	pkg, err := subscription.NewPackage(name, "", days, price)
	require.NoError(t, err)
	require.NoError(t, r.packages.Create(context.Background(), pkg))
	return pkg
}

func createUser(t *testing.T, r repos, email string) *user.User {
	t.Helper()
	u, err := user.NewUser("Test", email, "")
	require.NoError(t, err)
	require.NoError(t, r.users.Create(context.Background(), u))
	return u
}

func createPurchase(t *testing.T, r repos, u *user.User, pkg *subscription.Package) *subscription.Purchase {
	t.Helper()
	p, err := subscription.NewPurchase(u.ID(), pkg, "proof.png")
	require.NoError(t, err)
	require.NoError(t, r.purchases.Create(context.Background(), p))
	return p
}

func TestPackageRepository_CRUD(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	pkg := createPackage(t, r, "Monthly", 30, 10)
	assert.NotZero(t, pkg.ID())

	found, err := r.packages.GetBySID(ctx, pkg.SID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Monthly", found.Name())
	assert.Equal(t, uint64(10), found.Price())

	require.NoError(t, found.UpdateName("Monthly Plus"))
	found.UpdatePrice(12)
	require.NoError(t, r.packages.Update(ctx, found))

	reloaded, err := r.packages.GetByID(ctx, pkg.ID())
	require.NoError(t, err)
	assert.Equal(t, "Monthly Plus", reloaded.Name())
	assert.Equal(t, uint64(12), reloaded.Price())

	createPackage(t, r, "Yearly", 365, 100)
	all, err := r.packages.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, pkg.SID(), all[0].SID())

	require.NoError(t, r.packages.Delete(ctx, pkg.ID()))
	gone, err := r.packages.GetBySID(ctx, pkg.SID())
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, r.packages.Delete(ctx, pkg.ID()), subscription.ErrPackageNotFound)
}

func TestPurchaseRepository_UpdateStatusIsConditional(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	u := createUser(t, r, "a@example.com")
	pkg := createPackage(t, r, "Monthly", 30, 10)
	p := createPurchase(t, r, u, pkg)

	first, err := r.purchases.GetBySID(ctx, p.SID())
	require.NoError(t, err)
	second, err := r.purchases.GetBySID(ctx, p.SID())
	require.NoError(t, err)

	require.NoError(t, first.Approve(time.Now()))
	require.NoError(t, r.purchases.UpdateStatus(ctx, first, vo.PurchaseStatusPending))

	// A stale copy still thinks the purchase is pending.
	require.NoError(t, second.Reject(time.Now()))
	err = r.purchases.UpdateStatus(ctx, second, vo.PurchaseStatusPending)
	assert.ErrorIs(t, err, subscription.ErrPurchaseNotPending)

	stored, err := r.purchases.GetBySID(ctx, p.SID())
	require.NoError(t, err)
	assert.Equal(t, vo.PurchaseStatusApproved, stored.Status())
	assert.NotNil(t, stored.ReviewedAt())
}

func TestPurchaseRepository_ListFiltersAndPaginates(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := createUser(t, r, "alice@example.com")
	bob := createUser(t, r, "bob@example.com")
	pkg := createPackage(t, r, "Monthly", 30, 10)

	for i := 0; i < 3; i++ {
		createPurchase(t, r, alice, pkg)
	}
	bobs := createPurchase(t, r, bob, pkg)
	require.NoError(t, bobs.Reject(time.Now()))
	require.NoError(t, r.purchases.UpdateStatus(ctx, bobs, vo.PurchaseStatusPending))

	aliceID := alice.ID()
	page, total, err := r.purchases.List(ctx, subscription.PurchaseFilter{UserID: &aliceID, Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	rejected := vo.PurchaseStatusRejected
	list, total, err := r.purchases.List(ctx, subscription.PurchaseFilter{Status: &rejected, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, bobs.SID(), list[0].SID())
}

func TestPurchaseRepository_DetachKeepsSnapshot(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	u := createUser(t, r, "a@example.com")
	pkg := createPackage(t, r, "Monthly", 30, 10)
	p := createPurchase(t, r, u, pkg)

	count, err := r.purchases.CountPendingByPackageID(ctx, pkg.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, r.purchases.DetachPackage(ctx, pkg.ID()))

	stored, err := r.purchases.GetBySID(ctx, p.SID())
	require.NoError(t, err)
	assert.Nil(t, stored.PackageID())
	assert.Equal(t, "Monthly", stored.PackageName())
	assert.Equal(t, 30, stored.NumOfDays())
	assert.Equal(t, uint64(10), stored.Price())
}

func TestPurchaseRepository_StatsAndReviewedSince(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	u := createUser(t, r, "a@example.com")
	cheap := createPackage(t, r, "Weekly", 7, 3)
	pricey := createPackage(t, r, "Monthly", 30, 10)

	createPurchase(t, r, u, cheap)
	for _, pkg := range []*subscription.Package{cheap, pricey} {
		p := createPurchase(t, r, u, pkg)
		require.NoError(t, p.Approve(time.Now()))
		require.NoError(t, r.purchases.UpdateStatus(ctx, p, vo.PurchaseStatusPending))
	}

	stats, err := r.purchases.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(2), stats.Approved)
	assert.Equal(t, int64(0), stats.Rejected)
	assert.Equal(t, uint64(13), stats.ApprovedRevenue)

	approved, err := r.purchases.ListReviewedSince(ctx, vo.PurchaseStatusApproved, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, approved, 2)

	none, err := r.purchases.ListReviewedSince(ctx, vo.PurchaseStatusApproved, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := createUser(t, r, "alice@example.com")
	bob := createUser(t, r, "bob@example.com")

	byEmail, err := r.users.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.SID(), byEmail.SID())

	missing, err := r.users.GetBySID(ctx, "usr_missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = alice.ExtendValidity(30, time.Now())
	require.NoError(t, err)
	require.NoError(t, r.users.UpdateValidUntil(ctx, alice))

	active, err := r.users.CountActive(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)

	byIDs, err := r.users.GetByIDs(ctx, []uint{alice.ID(), bob.ID(), 999})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)
	require.NotNil(t, byIDs[alice.ID()].ValidUntil())

	list, total, err := r.users.List(ctx, user.ListFilter{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 1)
	assert.Equal(t, alice.SID(), list[0].SID())
}
