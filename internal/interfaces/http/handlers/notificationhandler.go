package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orris-inc/subadmin/internal/infrastructure/notification"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

const (
	// SSEKeepaliveInterval is the interval for sending keepalive comments.
	SSEKeepaliveInterval = 30 * time.Second

	SSEContentType = "text/event-stream"
)

// NotificationHandler streams purchase events over Server-Sent Events.
type NotificationHandler struct {
	hub       *notification.Hub
	keepalive time.Duration
	logger    logger.Interface
}

func NewNotificationHandler(hub *notification.Hub, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		hub:       hub,
		keepalive: SSEKeepaliveInterval,
		logger:    logger,
	}
}

// AdminStream handles GET /admin/notifications/stream
//
//	@Summary		Admin purchase events
//	@Description	SSE stream of purchase:new and purchase:status events
//	@Tags			admin-notifications
//	@Produce		text/event-stream
//	@Success		200
//	@Failure		429	{object}	utils.APIResponse
//	@Router			/admin/notifications/stream [get]
func (h *NotificationHandler) AdminStream(c *gin.Context) {
	h.stream(c, c.GetHeader(constants.HeaderXUserID), true)
}

// UserStream handles GET /notifications/stream
//
//	@Summary		Own purchase status events
//	@Tags			notifications
//	@Produce		text/event-stream
//	@Param			X-User-ID	header	string	true	"Caller user ID"
//	@Success		200
//	@Failure		401	{object}	utils.APIResponse
//	@Failure		429	{object}	utils.APIResponse
//	@Router			/notifications/stream [get]
func (h *NotificationHandler) UserStream(c *gin.Context) {
	h.stream(c, c.GetString(constants.ContextKeyUserSID), false)
}

func (h *NotificationHandler) stream(c *gin.Context, userSID string, admin bool) {
	connID := uuid.New().String()

	conn := h.hub.RegisterConn(connID, userSID, admin)
	if conn == nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many connections"})
		return
	}

	c.Header("Content-Type", SSEContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	if _, err := c.Writer.WriteString(": connected\n\n"); err != nil {
		h.hub.UnregisterConn(connID)
		h.logger.Warnw("sse initial write error", "conn_id", connID, "error", err)
		return
	}
	c.Writer.Flush()

	h.logger.Infow("sse connection opened",
		"conn_id", connID,
		"user_sid", userSID,
		"admin", admin,
	)

	h.runEventLoop(c, conn)
}

func (h *NotificationHandler) runEventLoop(c *gin.Context, conn *notification.SSEConn) {
	ticker := time.NewTicker(h.keepalive)
	defer ticker.Stop()

	ctx := c.Request.Context()

	for {
		select {
		case <-ctx.Done():
			h.hub.UnregisterConn(conn.ID)
			h.logger.Infow("sse connection closed by client", "conn_id", conn.ID)
			return

		case data, ok := <-conn.Send:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(data); err != nil {
				h.hub.UnregisterConn(conn.ID)
				h.logger.Warnw("sse write error", "conn_id", conn.ID, "error", err)
				return
			}
			c.Writer.Flush()

		case <-ticker.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				h.hub.UnregisterConn(conn.ID)
				h.logger.Warnw("sse keepalive error", "conn_id", conn.ID, "error", err)
				return
			}
			c.Writer.Flush()
		}
	}
}
