package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/domain/user"
	"github.com/orris-inc/subadmin/internal/shared/goroutine"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

const DefaultNotifyTimeout = 10 * time.Second

// EventDispatcher delivers purchase events on a background goroutine so
// that callers never wait for, or fail because of, a notifier.
type EventDispatcher struct {
	notifier PurchaseNotifier
	timeout  time.Duration
	logger   logger.Interface
}

func NewEventDispatcher(notifier PurchaseNotifier, timeout time.Duration, logger logger.Interface) *EventDispatcher {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &EventDispatcher{
		notifier: notifier,
		timeout:  timeout,
		logger:   logger,
	}
}

func (d *EventDispatcher) NewPurchase(event subscription.NewPurchaseEvent) {
	d.dispatch("notify-new-purchase", event.PurchaseSID, func(ctx context.Context) error {
		return d.notifier.NotifyNewPurchase(ctx, event)
	})
}

func (d *EventDispatcher) PurchaseStatus(event subscription.PurchaseStatusEvent) {
	d.dispatch("notify-purchase-status", event.PurchaseSID, func(ctx context.Context) error {
		return d.notifier.NotifyPurchaseStatus(ctx, event)
	})
}

func (d *EventDispatcher) dispatch(name, purchaseSID string, send func(ctx context.Context) error) {
	if d == nil || d.notifier == nil {
		return
	}

	goroutine.SafeGo(d.logger, name, func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := send(ctx); err != nil {
			d.logger.Warnw("failed to deliver purchase notification",
				"notification", name,
				"purchase_sid", purchaseSID,
				"error", err,
			)
		}
	})
}

func newPurchaseEvent(p *subscription.Purchase, u *user.User, proofURL string) subscription.NewPurchaseEvent {
	return subscription.NewPurchaseEvent{
		PurchaseSID: p.SID(),
		UserSID:     u.SID(),
		UserName:    u.Name(),
		UserEmail:   u.Email(),
		PackageName: p.PackageName(),
		NumOfDays:   p.NumOfDays(),
		Price:       p.Price(),
		ProofURL:    proofURL,
		CreatedAt:   p.CreatedAt(),
	}
}

func purchaseStatusEvent(p *subscription.Purchase, u *user.User, at time.Time) subscription.PurchaseStatusEvent {
	event := subscription.PurchaseStatusEvent{
		PurchaseSID: p.SID(),
		PackageName: p.PackageName(),
		Status:      p.Status(),
		OccurredAt:  at.UTC(),
	}
	if u != nil {
		event.UserSID = u.SID()
		event.UserName = u.Name()
		event.UserEmail = u.Email()
		event.ValidUntil = u.ValidUntil()
	}
	return event
}
