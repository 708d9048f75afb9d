package valueobjects

type PurchaseStatus string

const (
	PurchaseStatusPending  PurchaseStatus = "PENDING"
	PurchaseStatusApproved PurchaseStatus = "APPROVED"
	PurchaseStatusRejected PurchaseStatus = "REJECTED"
)

var validPurchaseStatuses = map[PurchaseStatus]bool{
	PurchaseStatusPending:  true,
	PurchaseStatusApproved: true,
	PurchaseStatusRejected: true,
}

func (s PurchaseStatus) String() string {
	return string(s)
}

func (s PurchaseStatus) IsValid() bool {
	return validPurchaseStatuses[s]
}

// IsTerminal reports whether no further transition is allowed.
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseStatusApproved || s == PurchaseStatusRejected
}

// CanTransitionTo allows only PENDING -> APPROVED and PENDING -> REJECTED.
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	return s == PurchaseStatusPending && target.IsTerminal()
}

// ParsePurchaseStatus returns the status for s, or false when s is unknown.
func ParsePurchaseStatus(s string) (PurchaseStatus, bool) {
	status := PurchaseStatus(s)
	return status, status.IsValid()
}
