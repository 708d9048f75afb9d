// Package notification delivers purchase events to admins and users.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	"github.com/orris-inc/subadmin/internal/shared/biztime"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

// EventType is the SSE event name.
type EventType string

const (
	EventNewPurchase    EventType = "purchase:new"
	EventPurchaseStatus EventType = "purchase:status"
)

// Event is the SSE payload written to subscribers.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Data      any       `json:"data"`
}

// SSEConn is one open event stream. Admin connections receive every event;
// user connections only receive status events addressed to UserSID.
type SSEConn struct {
	ID          string
	UserSID     string
	Admin       bool
	Send        chan []byte
	ConnectedAt time.Time
	closed      atomic.Bool
}

// TrySend attempts to send data to the SSE connection.
// Returns false if the channel is closed or full.
func (c *SSEConn) TrySend(data []byte) (sent bool) {
	if c.closed.Load() {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Close marks the connection as closed and closes the send channel.
func (c *SSEConn) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.Send)
	}
}

func (c *SSEConn) wants(event EventType, userSID string) bool {
	if c.Admin {
		return true
	}
	return event == EventPurchaseStatus && c.UserSID == userSID
}

type HubConfig struct {
	MaxConnsPerUser int // default 5
	SendBuffer      int // default 16
}

// Hub fans purchase events out to the SSE connections of this process.
type Hub struct {
	conns   map[string]*SSEConn
	connsMu sync.RWMutex

	// open connections per subscriber, admins keyed by "admin:<sid>"
	userConns   map[string]int
	userConnsMu sync.Mutex

	maxConnsPerUser int
	sendBuffer      int
	shutdown        atomic.Bool

	logger logger.Interface
}

func NewHub(log logger.Interface, config *HubConfig) *Hub {
	maxConns := 5
	buffer := 16
	if config != nil {
		if config.MaxConnsPerUser > 0 {
			maxConns = config.MaxConnsPerUser
		}
		if config.SendBuffer > 0 {
			buffer = config.SendBuffer
		}
	}

	return &Hub{
		conns:           make(map[string]*SSEConn),
		userConns:       make(map[string]int),
		maxConnsPerUser: maxConns,
		sendBuffer:      buffer,
		logger:          log,
	}
}

// RegisterConn opens a stream for userSID. Returns nil when the hub is shut
// down or the subscriber already holds the maximum number of streams.
func (h *Hub) RegisterConn(connID, userSID string, admin bool) *SSEConn {
	if h.shutdown.Load() {
		return nil
	}

	conn := &SSEConn{
		ID:          connID,
		UserSID:     userSID,
		Admin:       admin,
		Send:        make(chan []byte, h.sendBuffer),
		ConnectedAt: biztime.NowUTC(),
	}
	key := connKey(userSID, admin)

	// lock order: connsMu -> userConnsMu
	h.connsMu.Lock()
	defer h.connsMu.Unlock()

	h.userConnsMu.Lock()
	defer h.userConnsMu.Unlock()

	if h.userConns[key] >= h.maxConnsPerUser {
		h.logger.Warnw("SSE connection limit exceeded",
			"user_sid", userSID,
			"admin", admin,
			"limit", h.maxConnsPerUser,
		)
		return nil
	}

	h.conns[connID] = conn
	h.userConns[key]++

	h.logger.Infow("SSE connection registered",
		"conn_id", connID,
		"user_sid", userSID,
		"admin", admin,
	)

	return conn
}

// UnregisterConn removes an SSE connection.
func (h *Hub) UnregisterConn(connID string) {
	h.connsMu.Lock()
	h.userConnsMu.Lock()

	conn, ok := h.conns[connID]
	if ok {
		delete(h.conns, connID)
		key := connKey(conn.UserSID, conn.Admin)
		if h.userConns[key] > 1 {
			h.userConns[key]--
		} else {
			delete(h.userConns, key)
		}
	}

	h.userConnsMu.Unlock()
	h.connsMu.Unlock()

	if ok {
		conn.Close()
		h.logger.Infow("SSE connection unregistered",
			"conn_id", connID,
			"user_sid", conn.UserSID,
		)
	}
}

// Shutdown closes every connection and refuses new ones.
func (h *Hub) Shutdown() {
	if !h.shutdown.CompareAndSwap(false, true) {
		return
	}

	h.connsMu.Lock()
	for _, conn := range h.conns {
		conn.Close()
	}
	h.conns = make(map[string]*SSEConn)
	h.connsMu.Unlock()

	h.userConnsMu.Lock()
	h.userConns = make(map[string]int)
	h.userConnsMu.Unlock()
}

func (h *Hub) ConnCount() int {
	h.connsMu.RLock()
	defer h.connsMu.RUnlock()
	return len(h.conns)
}

func (h *Hub) NotifyNewPurchase(ctx context.Context, event subscription.NewPurchaseEvent) error {
	return h.broadcast(EventNewPurchase, "", event)
}

func (h *Hub) NotifyPurchaseStatus(ctx context.Context, event subscription.PurchaseStatusEvent) error {
	return h.broadcast(EventPurchaseStatus, event.UserSID, event)
}

func (h *Hub) broadcast(eventType EventType, userSID string, payload any) error {
	data, err := formatSSEEvent(&Event{
		Type:      eventType,
		Timestamp: biztime.NowUTC().Unix(),
		Data:      payload,
	})
	if err != nil {
		return fmt.Errorf("failed to format SSE event: %w", err)
	}

	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	for _, conn := range h.conns {
		if !conn.wants(eventType, userSID) {
			continue
		}
		if !conn.TrySend(data) {
			h.logger.Warnw("failed to send SSE event, channel full",
				"conn_id", conn.ID,
				"event_type", eventType,
			)
		}
	}
	return nil
}

func connKey(userSID string, admin bool) string {
	if admin {
		return "admin:" + userSID
	}
	return userSID
}

// formatSSEEvent renders "event: <type>\ndata: <json>\n\n".
func formatSSEEvent(event *Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, data)), nil
}
