package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// ReplyHandler serves the routes addressed by reply id.
type ReplyHandler struct {
	svc service.ReplyService
}

func NewReplyHandler(svc service.ReplyService) *ReplyHandler {
	return &ReplyHandler{svc: svc}
}

func (h *ReplyHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.PUT("/:reply_id", authRequired, h.edit)
	rg.DELETE("/:reply_id", authRequired, h.remove)
}

func (h *ReplyHandler) edit(c *gin.Context) {
	var req dto.UpdateReplyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reply, err := h.svc.Edit(ctx, callerID(c), c.Param("reply_id"), req.Content)
	if err != nil {
		h.writeReplyError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *ReplyHandler) remove(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.SoftDelete(ctx, callerID(c), c.Param("reply_id")); err != nil {
		h.writeReplyError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReplyHandler) writeReplyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReplyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "reply not found"})
	case errors.Is(err, service.ErrNotReplyAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReplyDeleted), errors.Is(err, service.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
