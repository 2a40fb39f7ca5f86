package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// ReactionHandler serves the reaction endpoints for every content domain.
// Each domain group mounts it with its own content type and route param name,
// so one handler covers posts, videos, answers, stories, comments and replies.
type ReactionHandler struct {
	svc service.ReactionService
}

func NewReactionHandler(svc service.ReactionService) *ReactionHandler {
	return &ReactionHandler{svc: svc}
}

// RegisterRoutes mounts reaction routes under an item of the given type.
// paramName must match the surrounding group's id param to keep gin's router
// happy (e.g. "post_id" under /posts).
func (h *ReactionHandler) RegisterRoutes(rg *gin.RouterGroup, contentType models.ContentType, paramName string, authRequired, authOptional gin.HandlerFunc) {
	base := "/:" + paramName + "/reactions"
	rg.PUT(base, authRequired, h.react(contentType, paramName))
	rg.GET(base, authOptional, h.get(contentType, paramName))
	rg.GET(base+"/users", h.reactors(contentType, paramName))
}

func (h *ReactionHandler) react(contentType models.ContentType, paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ReactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		outcome, err := h.svc.React(ctx, callerID(c), c.Param(paramName), contentType, models.ReactionKind(req.Kind))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidReactionKind):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, service.ErrContentNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, outcome)
	}
}

func (h *ReactionHandler) get(contentType models.ContentType, paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		state, err := h.svc.GetReactions(ctx, c.Param(paramName), contentType, callerID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func (h *ReactionHandler) reactors(contentType models.ContentType, paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var kind *models.ReactionKind
		if k := c.Query("kind"); k != "" {
			parsed := models.ReactionKind(k)
			kind = &parsed
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		reactors, err := h.svc.ListReactors(ctx, c.Param(paramName), contentType, kind)
		if err != nil {
			if errors.Is(err, service.ErrInvalidReactionKind) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data":  reactors,
			"total": len(reactors),
		})
	}
}
