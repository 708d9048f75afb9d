package notification

import (
	"context"
	"errors"

	"github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
)

// MultiNotifier forwards every event to all notifiers and joins their
// errors. One failing notifier does not stop the others.
type MultiNotifier struct {
	notifiers []usecases.PurchaseNotifier
}

func NewMultiNotifier(notifiers ...usecases.PurchaseNotifier) *MultiNotifier {
	m := &MultiNotifier{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

func (m *MultiNotifier) NotifyNewPurchase(ctx context.Context, event subscription.NewPurchaseEvent) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.NotifyNewPurchase(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiNotifier) NotifyPurchaseStatus(ctx context.Context, event subscription.PurchaseStatusEvent) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.NotifyPurchaseStatus(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
