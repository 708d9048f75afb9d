package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/biztime"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

const purchaseEventChannel = "subadmin:purchase:event"

// PurchaseEventType represents the kind of purchase event on the channel.
type PurchaseEventType string

const (
	PurchaseEventNew    PurchaseEventType = "new_purchase"
	PurchaseEventStatus PurchaseEventType = "purchase_status"
)

// PurchaseEventMessage is the envelope published to Redis. Exactly one of
// NewPurchase and Status is set, matching Type.
type PurchaseEventMessage struct {
	Type        PurchaseEventType                 `json:"type"`
	Timestamp   int64                             `json:"timestamp"`
	NewPurchase *subscription.NewPurchaseEvent    `json:"new_purchase,omitempty"`
	Status      *subscription.PurchaseStatusEvent `json:"status,omitempty"`
}

// RedisPurchaseEventBus publishes purchase events to Redis Pub/Sub so that
// every instance can relay them to its own SSE subscribers.
type RedisPurchaseEventBus struct {
	client *redis.Client
	logger logger.Interface
}

var _ usecases.PurchaseNotifier = (*RedisPurchaseEventBus)(nil)

func NewRedisPurchaseEventBus(client *redis.Client, logger logger.Interface) *RedisPurchaseEventBus {
	return &RedisPurchaseEventBus{
		client: client,
		logger: logger,
	}
}

func (b *RedisPurchaseEventBus) NotifyNewPurchase(ctx context.Context, event subscription.NewPurchaseEvent) error {
	return b.publish(ctx, PurchaseEventMessage{
		Type:        PurchaseEventNew,
		Timestamp:   biztime.NowUTC().Unix(),
		NewPurchase: &event,
	})
}

func (b *RedisPurchaseEventBus) NotifyPurchaseStatus(ctx context.Context, event subscription.PurchaseStatusEvent) error {
	return b.publish(ctx, PurchaseEventMessage{
		Type:      PurchaseEventStatus,
		Timestamp: biztime.NowUTC().Unix(),
		Status:    &event,
	})
}

func (b *RedisPurchaseEventBus) publish(ctx context.Context, msg PurchaseEventMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, purchaseEventChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish purchase event",
			"type", msg.Type,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("purchase event published", "type", msg.Type)
	return nil
}

// Subscribe relays every event on the channel to local until ctx is done.
func (b *RedisPurchaseEventBus) Subscribe(ctx context.Context, local usecases.PurchaseNotifier) error {
	pubsub := b.client.Subscribe(ctx, purchaseEventChannel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to purchase events", "channel", purchaseEventChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("purchase event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("purchase event channel closed")
				return nil
			}
			if err := relay(ctx, msg.Payload, local); err != nil {
				b.logger.Warnw("failed to relay purchase event",
					"payload", msg.Payload,
					"error", err,
				)
			}
		}
	}
}

func relay(ctx context.Context, payload string, local usecases.PurchaseNotifier) error {
	var msg PurchaseEventMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	switch {
	case msg.Type == PurchaseEventNew && msg.NewPurchase != nil:
		return local.NotifyNewPurchase(ctx, *msg.NewPurchase)
	case msg.Type == PurchaseEventStatus && msg.Status != nil:
		return local.NotifyPurchaseStatus(ctx, *msg.Status)
	default:
		return fmt.Errorf("unknown purchase event type %q", msg.Type)
	}
}
