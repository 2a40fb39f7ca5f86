package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// RegisterRoutes mounts the inbox endpoints. The whole group requires auth:
// every route is scoped to the caller.
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Inbox)
	rg.GET("/unseen", h.Unseen)
	rg.PUT("/:notification_id/seen", h.MarkSeen)
	rg.PUT("/seen", h.MarkAllSeen)
}

func (h *NotificationHandler) Inbox(c *gin.Context) {
	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	inbox, err := h.svc.GetInbox(ctx, callerID(c), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inbox)
}

func (h *NotificationHandler) Unseen(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := h.svc.CountUnseen(ctx, callerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unseen": count})
}

func (h *NotificationHandler) MarkSeen(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := h.svc.MarkSeen(ctx, callerID(c), c.Param("notification_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllSeen(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.MarkAllSeen(ctx, callerID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
