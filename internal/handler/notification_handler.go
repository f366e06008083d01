package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kairu/internal/errors"
	"kairu/internal/notify"
)

const streamBuffer = 16

type NotificationHandler struct {
	inbox *notify.Inbox
}

type permissionRequest struct {
	Permission string `json:"permission"`
}

func NewNotificationHandler(inbox *notify.Inbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": h.inbox.List(userID)})
}

// Stream pushes each delivered notification as a server-sent event until the
// client disconnects. A "ready" event carrying the current permission is sent
// once the subscription is live.
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	events, cancel := h.inbox.Subscribe(userID, streamBuffer)
	defer cancel()

	c.SSEvent("ready", gin.H{"permission": h.inbox.Permission(userID)})
	c.Writer.Flush()

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case n, open := <-events:
			if !open {
				return false
			}
			c.SSEvent("notification", n)
			return true
		}
	})
}

func (h *NotificationHandler) GetPermission(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"permission": h.inbox.Permission(userID)})
}

func (h *NotificationHandler) SetPermission(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req permissionRequest
	if !bindJSON(c, &req) {
		return
	}

	permission, err := notify.ParsePermission(req.Permission)
	if err != nil {
		writeError(c, apperrors.BadRequest("invalid_permission", "permission must be default, granted or denied"))
		return
	}
	h.inbox.SetPermission(userID, permission)
	c.JSON(http.StatusOK, gin.H{"permission": permission})
}
