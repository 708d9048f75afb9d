package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

func drain(conn *SSEConn) []string {
	var out []string
	for {
		select {
		case data, ok := <-conn.Send:
			if !ok {
				return out
			}
			out = append(out, string(data))
		default:
			return out
		}
	}
}

func TestHub_RoutesEvents(t *testing.T) {
	hub := NewHub(logger.NewLogger(), nil)

	admin := hub.RegisterConn("c1", "usr_admin", true)
	alice := hub.RegisterConn("c2", "usr_alice", false)
	bob := hub.RegisterConn("c3", "usr_bob", false)
	require.NotNil(t, admin)
	require.NotNil(t, alice)
	require.NotNil(t, bob)

	ctx := context.Background()
	require.NoError(t, hub.NotifyNewPurchase(ctx, subscription.NewPurchaseEvent{PurchaseSID: "pur_1", UserSID: "usr_alice"}))
	require.NoError(t, hub.NotifyPurchaseStatus(ctx, subscription.PurchaseStatusEvent{PurchaseSID: "pur_1", UserSID: "usr_alice", Status: "APPROVED"}))

	adminEvents := drain(admin)
	require.Len(t, adminEvents, 2)
	assert.True(t, strings.HasPrefix(adminEvents[0], "event: purchase:new\ndata: "))
	assert.True(t, strings.HasSuffix(adminEvents[0], "\n\n"))
	assert.Contains(t, adminEvents[1], `"status":"APPROVED"`)

	aliceEvents := drain(alice)
	require.Len(t, aliceEvents, 1)
	assert.Contains(t, aliceEvents[0], "event: purchase:status")

	assert.Empty(t, drain(bob))
}

func TestHub_ConnectionLimit(t *testing.T) {
	hub := NewHub(logger.NewLogger(), &HubConfig{MaxConnsPerUser: 2})

	require.NotNil(t, hub.RegisterConn("a", "usr_alice", false))
	require.NotNil(t, hub.RegisterConn("b", "usr_alice", false))
	assert.Nil(t, hub.RegisterConn("c", "usr_alice", false))
	assert.NotNil(t, hub.RegisterConn("d", "usr_alice", true), "admin streams are counted separately")

	hub.UnregisterConn("a")
	assert.NotNil(t, hub.RegisterConn("e", "usr_alice", false))
	assert.Equal(t, 3, hub.ConnCount())
}

func TestHub_FullBufferDropsEvent(t *testing.T) {
	hub := NewHub(logger.NewLogger(), &HubConfig{SendBuffer: 1})
	conn := hub.RegisterConn("a", "usr_admin", true)
	require.NotNil(t, conn)

	ctx := context.Background()
	require.NoError(t, hub.NotifyNewPurchase(ctx, subscription.NewPurchaseEvent{PurchaseSID: "pur_1"}))
	require.NoError(t, hub.NotifyNewPurchase(ctx, subscription.NewPurchaseEvent{PurchaseSID: "pur_2"}))

	assert.Len(t, drain(conn), 1)
}

func TestHub_Shutdown(t *testing.T) {
	hub := NewHub(logger.NewLogger(), nil)
	conn := hub.RegisterConn("a", "usr_admin", true)
	require.NotNil(t, conn)

	hub.Shutdown()
	hub.Shutdown()

	_, open := <-conn.Send
	assert.False(t, open)
	assert.False(t, conn.TrySend([]byte("x")))
	assert.Nil(t, hub.RegisterConn("b", "usr_admin", true))
	assert.Equal(t, 0, hub.ConnCount())

	hub.UnregisterConn("a")
}

type stubNotifier struct {
	err      error
	newCalls int
	status   int
}

func (s *stubNotifier) NotifyNewPurchase(ctx context.Context, event subscription.NewPurchaseEvent) error {
	s.newCalls++
	return s.err
}

func (s *stubNotifier) NotifyPurchaseStatus(ctx context.Context, event subscription.PurchaseStatusEvent) error {
	s.status++
	return s.err
}

func TestMultiNotifier_CallsAllAndJoinsErrors(t *testing.T) {
	errMail := errors.New("smtp down")
	errBus := errors.New("redis down")
	first := &stubNotifier{err: errMail}
	second := &stubNotifier{}
	third := &stubNotifier{err: errBus}

	multi := NewMultiNotifier(first, nil, second, third)

	err := multi.NotifyNewPurchase(context.Background(), subscription.NewPurchaseEvent{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errMail)
	assert.ErrorIs(t, err, errBus)

	assert.NoError(t, NewMultiNotifier(second).NotifyPurchaseStatus(context.Background(), subscription.PurchaseStatusEvent{}))

	assert.Equal(t, 1, first.newCalls)
	assert.Equal(t, 1, second.newCalls)
	assert.Equal(t, 1, third.newCalls)
	assert.Equal(t, 1, second.status)
}
