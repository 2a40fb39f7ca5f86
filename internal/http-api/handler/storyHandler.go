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

type StoryHandler struct {
	svc service.StoryService
}

func NewStoryHandler(svc service.StoryService) *StoryHandler {
	return &StoryHandler{svc: svc}
}

func (h *StoryHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.GET("/:story_id", h.Get)
	rg.POST("/", authRequired, h.Share)
	rg.DELETE("/:story_id", authRequired, h.Delete)
}

func (h *StoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stories, err := h.svc.GetAll(ctx, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *StoryHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	story, err := h.svc.GetByID(ctx, c.Param("story_id"))
	if err != nil {
		if errors.Is(err, service.ErrStoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) Share(c *gin.Context) {
	var req dto.CreateStoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	story, err := h.svc.Share(ctx, callerID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, callerID(c), c.Param("story_id")); err != nil {
		switch {
		case errors.Is(err, service.ErrStoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		case errors.Is(err, service.ErrNotStoryAuthor):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
