package usecases

import (
	"context"
	"io"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
)

// PurchaseNotifier receives purchase lifecycle events. Implementations are
// invoked asynchronously and their errors are only logged.
type PurchaseNotifier interface {
	NotifyNewPurchase(ctx context.Context, event subscription.NewPurchaseEvent) error
	NotifyPurchaseStatus(ctx context.Context, event subscription.PurchaseStatusEvent) error
}

// ProofUpload is a proof-of-payment file as received from the client.
type ProofUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ProofStorage persists proof-of-payment files. Save returns the stored file
// name and wraps subscription.ErrInvalidProof for rejected uploads.
type ProofStorage interface {
	Save(ctx context.Context, upload ProofUpload) (string, error)
	Delete(ctx context.Context, filename string) error
	URL(filename string) string
}

// DescriptionRenderer turns a markdown package description into safe HTML.
type DescriptionRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

// TransactionRunner is satisfied by *db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
