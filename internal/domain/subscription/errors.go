package subscription

import (
	"errors"
	"fmt"

	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
)

var (
	ErrPackageNotFound            = errors.New("package not found")
	ErrPackageHasPendingPurchases = errors.New("package has pending purchases")
	ErrInvalidPackage             = errors.New("invalid package")
	ErrPurchaseNotFound           = errors.New("purchase not found")
	ErrPurchaseNotPending         = errors.New("purchase is not pending")
	ErrProofRequired              = errors.New("proof of payment is required")
)

func ErrInvalidTransition(from, to vo.PurchaseStatus) error {
	return fmt.Errorf("%w: purchase already %s, cannot mark %s",
		ErrPurchaseNotPending, from, to)
}

// ErrInvalidProof is wrapped by proof storages when an upload is rejected.
var ErrInvalidProof = errors.New("invalid proof of payment")
