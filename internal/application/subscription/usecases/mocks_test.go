package usecases

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

// --- logger ---

type mockLogger struct{}

func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }

// --- package repository ---

type mockPackageRepository struct {
	CreateFunc   func(ctx context.Context, pkg *subscription.Package) error
	GetByIDFunc  func(ctx context.Context, id uint) (*subscription.Package, error)
	GetBySIDFunc func(ctx context.Context, sid string) (*subscription.Package, error)
	ListFunc     func(ctx context.Context) ([]*subscription.Package, error)
	UpdateFunc   func(ctx context.Context, pkg *subscription.Package) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

func (m *mockPackageRepository) Create(ctx context.Context, pkg *subscription.Package) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, pkg)
	}
	return nil
}

func (m *mockPackageRepository) GetByID(ctx context.Context, id uint) (*subscription.Package, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPackageRepository) GetBySID(ctx context.Context, sid string) (*subscription.Package, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockPackageRepository) List(ctx context.Context) ([]*subscription.Package, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPackageRepository) Update(ctx context.Context, pkg *subscription.Package) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, pkg)
	}
	return nil
}

func (m *mockPackageRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// --- purchase repository ---

type mockPurchaseRepository struct {
	CreateFunc                  func(ctx context.Context, p *subscription.Purchase) error
	GetBySIDFunc                func(ctx context.Context, sid string) (*subscription.Purchase, error)
	ListFunc                    func(ctx context.Context, filter subscription.PurchaseFilter) ([]*subscription.Purchase, int64, error)
	UpdateStatusFunc            func(ctx context.Context, p *subscription.Purchase, from vo.PurchaseStatus) error
	CountPendingByPackageIDFunc func(ctx context.Context, packageID uint) (int64, error)
	DetachPackageFunc           func(ctx context.Context, packageID uint) error
	ListReviewedSinceFunc       func(ctx context.Context, status vo.PurchaseStatus, since time.Time) ([]*subscription.Purchase, error)
	GetStatsFunc                func(ctx context.Context) (*subscription.PurchaseStats, error)
}

func (m *mockPurchaseRepository) Create(ctx context.Context, p *subscription.Purchase) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPurchaseRepository) GetBySID(ctx context.Context, sid string) (*subscription.Purchase, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockPurchaseRepository) List(ctx context.Context, filter subscription.PurchaseFilter) ([]*subscription.Purchase, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockPurchaseRepository) UpdateStatus(ctx context.Context, p *subscription.Purchase, from vo.PurchaseStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, p, from)
	}
	return nil
}

func (m *mockPurchaseRepository) CountPendingByPackageID(ctx context.Context, packageID uint) (int64, error) {
	if m.CountPendingByPackageIDFunc != nil {
		return m.CountPendingByPackageIDFunc(ctx, packageID)
	}
	return 0, nil
}

func (m *mockPurchaseRepository) DetachPackage(ctx context.Context, packageID uint) error {
	if m.DetachPackageFunc != nil {
		return m.DetachPackageFunc(ctx, packageID)
	}
	return nil
}

func (m *mockPurchaseRepository) ListReviewedSince(ctx context.Context, status vo.PurchaseStatus, since time.Time) ([]*subscription.Purchase, error) {
	if m.ListReviewedSinceFunc != nil {
		return m.ListReviewedSinceFunc(ctx, status, since)
	}
	return nil, nil
}

func (m *mockPurchaseRepository) GetStats(ctx context.Context) (*subscription.PurchaseStats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx)
	}
	return &subscription.PurchaseStats{}, nil
}

// --- user repository ---

type mockUserRepository struct {
	CreateFunc           func(ctx context.Context, u *user.User) error
	GetByIDFunc          func(ctx context.Context, id uint) (*user.User, error)
	GetBySIDFunc         func(ctx context.Context, sid string) (*user.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*user.User, error)
	GetByIDsFunc         func(ctx context.Context, ids []uint) (map[uint]*user.User, error)
	ListFunc             func(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error)
	UpdateValidUntilFunc func(ctx context.Context, u *user.User) error
	CountActiveFunc      func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return map[uint]*user.User{}, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) UpdateValidUntil(ctx context.Context, u *user.User) error {
	if m.UpdateValidUntilFunc != nil {
		return m.UpdateValidUntilFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	if m.CountActiveFunc != nil {
		return m.CountActiveFunc(ctx, now)
	}
	return 0, nil
}

// --- transaction runner ---

// mockTxRunner runs fn inline and records whether a transaction was used.
type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// --- proof storage ---

type mockProofStorage struct {
	SaveFunc   func(ctx context.Context, upload ProofUpload) (string, error)
	DeleteFunc func(ctx context.Context, filename string) error
	deleted    []string
}

func (m *mockProofStorage) Save(ctx context.Context, upload ProofUpload) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, upload)
	}
	_, _ = io.Copy(io.Discard, upload.Content)
	return "stored.png", nil
}

func (m *mockProofStorage) Delete(ctx context.Context, filename string) error {
	m.deleted = append(m.deleted, filename)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, filename)
	}
	return nil
}

func (m *mockProofStorage) URL(filename string) string {
	return "http://localhost:8080/uploads/transitions/" + filename
}

// --- notifier ---

// mockNotifier records delivered events; err is returned from every call.
type mockNotifier struct {
	mu          sync.Mutex
	newPurchase []subscription.NewPurchaseEvent
	statuses    []subscription.PurchaseStatusEvent
	delivered   chan struct{}
	err         error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{delivered: make(chan struct{}, 16)}
}

func (m *mockNotifier) NotifyNewPurchase(ctx context.Context, event subscription.NewPurchaseEvent) error {
	m.mu.Lock()
	m.newPurchase = append(m.newPurchase, event)
	m.mu.Unlock()
	m.delivered <- struct{}{}
	return m.err
}

func (m *mockNotifier) NotifyPurchaseStatus(ctx context.Context, event subscription.PurchaseStatusEvent) error {
	m.mu.Lock()
	m.statuses = append(m.statuses, event)
	m.mu.Unlock()
	m.delivered <- struct{}{}
	return m.err
}

// waitFor blocks until n events have been delivered or the timeout expires.
func (m *mockNotifier) waitFor(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for i := 0; i < n; i++ {
		select {
		case <-m.delivered:
		case <-deadline:
			return false
		}
	}
	return true
}

func (m *mockNotifier) statusEvents() []subscription.PurchaseStatusEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]subscription.PurchaseStatusEvent(nil), m.statuses...)
}

func (m *mockNotifier) newPurchaseEvents() []subscription.NewPurchaseEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]subscription.NewPurchaseEvent(nil), m.newPurchase...)
}

// --- fixtures ---

func testPackage(id uint, days int, price uint64) *subscription.Package {
	now := time.Now().UTC()
	pkg, err := subscription.ReconstructPackage(id, "pkg_test00000001", "Monthly", "**fast**", days, price, now, now)
	if err != nil {
		panic(err)
	}
	return pkg
}

func testPurchase(status vo.PurchaseStatus, days int) *subscription.Purchase {
	now := time.Now().UTC()
	pkgID := uint(1)
	p, err := subscription.ReconstructPurchase(10, "pur_test00000001", 5, &pkgID, "Monthly", days, 10,
		string(status), "proof.png", map[string]interface{}{"package_sid": "pkg_test00000001"}, nil, now, now)
	if err != nil {
		panic(err)
	}
	return p
}

func testUser(validUntil *time.Time) *user.User {
	now := time.Now().UTC()
	u, err := user.ReconstructUser(5, "usr_test00000001", "Alice", "alice@example.com", "555-0100", validUntil, now, now)
	if err != nil {
		panic(err)
	}
	return u
}

type stubRenderer struct {
	err error
}

func (s stubRenderer) ToHTMLSanitized(markdown string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "<p>" + markdown + "</p>", nil
}
