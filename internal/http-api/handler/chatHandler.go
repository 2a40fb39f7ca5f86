package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the REST side of chat: room listing and history. Live
// messaging goes over the WebSocket endpoint.
type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/:room_id", h.GetRoom)
	rg.GET("/rooms/:room_id/messages", h.History)
	rg.POST("/rooms", adminOnly, h.CreateRoom)
	rg.GET("/users/:user_id/messages", adminOnly, h.UserHistory)
	rg.DELETE("/messages/:message_id", adminOnly, h.DeleteMessage)
}

func (h *ChatHandler) ListRooms(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.svc.ListRooms(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

func (h *ChatHandler) GetRoom(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	room, err := h.svc.GetRoom(ctx, c.Param("room_id"))
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *ChatHandler) History(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	messages, err := h.svc.History(ctx, c.Param("room_id"), limit)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": messages})
}

func (h *ChatHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	room, err := h.svc.CreateRoom(ctx, callerRole(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotRoomCreator):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrRoomNameInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, room)
}

// UserHistory lists a user's recent messages across rooms, for moderation.
func (h *ChatHandler) UserHistory(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	messages, err := h.svc.UserHistory(ctx, callerRole(c), c.Param("user_id"), limit)
	if err != nil {
		if errors.Is(err, service.ErrNotModerator) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": messages})
}

func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	messageID, err := strconv.ParseInt(c.Param("message_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeleteMessage(ctx, callerRole(c), messageID); err != nil {
		if errors.Is(err, service.ErrNotModerator) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}
