package pubsub

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
)

type recordingNotifier struct {
	newPurchases []subscription.NewPurchaseEvent
	statuses     []subscription.PurchaseStatusEvent
}

func (r *recordingNotifier) NotifyNewPurchase(ctx context.Context, event subscription.NewPurchaseEvent) error {
	r.newPurchases = append(r.newPurchases, event)
	return nil
}

func (r *recordingNotifier) NotifyPurchaseStatus(ctx context.Context, event subscription.PurchaseStatusEvent) error {
	r.statuses = append(r.statuses, event)
	return nil
}

func encode(t *testing.T, msg PurchaseEventMessage) string {
	t.Helper()
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	return string(data)
}

func TestRelay_DispatchesByType(t *testing.T) {
	local := &recordingNotifier{}
	ctx := context.Background()

	require.NoError(t, relay(ctx, encode(t, PurchaseEventMessage{
		Type:        PurchaseEventNew,
		NewPurchase: &subscription.NewPurchaseEvent{PurchaseSID: "pur_1", Price: 10},
	}), local))
	require.NoError(t, relay(ctx, encode(t, PurchaseEventMessage{
		Type:   PurchaseEventStatus,
		Status: &subscription.PurchaseStatusEvent{PurchaseSID: "pur_1", UserSID: "usr_1", Status: "REJECTED"},
	}), local))

	require.Len(t, local.newPurchases, 1)
	assert.Equal(t, uint64(10), local.newPurchases[0].Price)
	require.Len(t, local.statuses, 1)
	assert.Equal(t, "usr_1", local.statuses[0].UserSID)
}

func TestRelay_RejectsMalformed(t *testing.T) {
	local := &recordingNotifier{}
	ctx := context.Background()

	assert.Error(t, relay(ctx, "not json", local))
	assert.Error(t, relay(ctx, encode(t, PurchaseEventMessage{Type: PurchaseEventNew}), local))
	assert.Error(t, relay(ctx, encode(t, PurchaseEventMessage{Type: "other"}), local))

	assert.Empty(t, local.newPurchases)
	assert.Empty(t, local.statuses)
}
