package subscription

import (
	"context"
	"time"

	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
)

// Repositories return (nil, nil) when a record does not exist.

type PackageRepository interface {
	Create(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, id uint) (*Package, error)
	GetBySID(ctx context.Context, sid string) (*Package, error)
	List(ctx context.Context) ([]*Package, error)
	Update(ctx context.Context, pkg *Package) error
	Delete(ctx context.Context, id uint) error
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	GetBySID(ctx context.Context, sid string) (*Purchase, error)
	List(ctx context.Context, filter PurchaseFilter) ([]*Purchase, int64, error)

	// UpdateStatus persists the purchase's reviewed state only if the stored
	// row still has status from. It returns ErrPurchaseNotPending otherwise.
	UpdateStatus(ctx context.Context, purchase *Purchase, from vo.PurchaseStatus) error

	CountPendingByPackageID(ctx context.Context, packageID uint) (int64, error)
	// DetachPackage clears the package reference of all purchases of packageID.
	DetachPackage(ctx context.Context, packageID uint) error

	ListReviewedSince(ctx context.Context, status vo.PurchaseStatus, since time.Time) ([]*Purchase, error)
	GetStats(ctx context.Context) (*PurchaseStats, error)
}

type PurchaseFilter struct {
	UserID   *uint
	Status   *vo.PurchaseStatus
	Page     int
	PageSize int
}

type PurchaseStats struct {
	Pending         int64
	Approved        int64
	Rejected        int64
	ApprovedRevenue uint64
}
