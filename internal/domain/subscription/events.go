package subscription

import (
	"time"

	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
)

// NewPurchaseEvent is sent to admins when a user submits a purchase.
type NewPurchaseEvent struct {
	PurchaseSID string    `json:"purchase_id"`
	UserSID     string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	PackageName string    `json:"package_name"`
	NumOfDays   int       `json:"num_of_days"`
	Price       uint64    `json:"price"`
	ProofURL    string    `json:"transition"`
	CreatedAt   time.Time `json:"created_at"`
}

// PurchaseStatusEvent is sent to the purchasing user whenever the purchase
// status is set, including the initial PENDING.
type PurchaseStatusEvent struct {
	PurchaseSID string            `json:"purchase_id"`
	UserSID     string            `json:"user_id"`
	UserName    string            `json:"user_name"`
	UserEmail   string            `json:"user_email"`
	PackageName string            `json:"package_name"`
	Status      vo.PurchaseStatus `json:"status"`
	ValidUntil  *time.Time        `json:"valid_until,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}
