package subscription

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/shared/id"
)

// Purchase is a user's request to extend their validity with a package.
// Name, days and price are copied from the package when the purchase is
// created and never follow later package edits.
type Purchase struct {
	id          uint
	sid         string
	userID      uint
	packageID   *uint
	packageName string
	numOfDays   int
	price       uint64
	status      vo.PurchaseStatus
	transition  string
	metadata    map[string]interface{}
	reviewedAt  *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPurchase(userID uint, pkg *Package, transition string) (*Purchase, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if pkg == nil || pkg.ID() == 0 {
		return nil, fmt.Errorf("package is required")
	}
	if strings.TrimSpace(transition) == "" {
		return nil, ErrProofRequired
	}

	sid, err := id.NewPurchaseID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate purchase ID: %w", err)
	}

	packageID := pkg.ID()
	now := time.Now().UTC()
	return &Purchase{
		sid:         sid,
		userID:      userID,
		packageID:   &packageID,
		packageName: pkg.Name(),
		numOfDays:   pkg.NumOfDays(),
		price:       pkg.Price(),
		status:      vo.PurchaseStatusPending,
		transition:  transition,
		metadata: map[string]interface{}{
			"package_sid": pkg.SID(),
		},
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructPurchase(id uint, sid string, userID uint, packageID *uint,
	packageName string, numOfDays int, price uint64, status string,
	transition string, metadata map[string]interface{}, reviewedAt *time.Time,
	createdAt, updatedAt time.Time) (*Purchase, error) {

	if id == 0 {
		return nil, fmt.Errorf("purchase ID cannot be zero")
	}

	purchaseStatus, ok := vo.ParsePurchaseStatus(status)
	if !ok {
		return nil, fmt.Errorf("invalid purchase status: %s", status)
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Purchase{
		id:          id,
		sid:         sid,
		userID:      userID,
		packageID:   packageID,
		packageName: packageName,
		numOfDays:   numOfDays,
		price:       price,
		status:      purchaseStatus,
		transition:  transition,
		metadata:    metadata,
		reviewedAt:  reviewedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Purchase) ID() uint {
	return p.id
}

func (p *Purchase) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("purchase ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("purchase ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Purchase) SID() string {
	return p.sid
}

func (p *Purchase) UserID() uint {
	return p.userID
}

// PackageID is nil once the package has been deleted.
func (p *Purchase) PackageID() *uint {
	return p.packageID
}

func (p *Purchase) PackageName() string {
	return p.packageName
}

func (p *Purchase) NumOfDays() int {
	return p.numOfDays
}

func (p *Purchase) Price() uint64 {
	return p.price
}

func (p *Purchase) Status() vo.PurchaseStatus {
	return p.status
}

func (p *Purchase) IsPending() bool {
	return p.status == vo.PurchaseStatusPending
}

// Transition is the stored proof-of-payment file name.
func (p *Purchase) Transition() string {
	return p.transition
}

func (p *Purchase) Metadata() map[string]interface{} {
	return p.metadata
}

func (p *Purchase) ReviewedAt() *time.Time {
	return p.reviewedAt
}

func (p *Purchase) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Purchase) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Purchase) Approve(now time.Time) error {
	return p.review(vo.PurchaseStatusApproved, now)
}

func (p *Purchase) Reject(now time.Time) error {
	return p.review(vo.PurchaseStatusRejected, now)
}

func (p *Purchase) review(target vo.PurchaseStatus, now time.Time) error {
	if !p.status.CanTransitionTo(target) {
		return ErrInvalidTransition(p.status, target)
	}

	reviewedAt := now.UTC()
	p.status = target
	p.reviewedAt = &reviewedAt
	p.updatedAt = reviewedAt
	return nil
}
