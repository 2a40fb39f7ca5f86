package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GamificationHandler struct {
	svc service.GamificationService
}

func NewGamificationHandler(svc service.GamificationService) *GamificationHandler {
	return &GamificationHandler{svc: svc}
}

func (h *GamificationHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("/achievements", h.Catalog)
	rg.GET("/achievements/mine", authRequired, h.Mine)
	rg.GET("/leaderboard", h.Leaderboard)
}

func (h *GamificationHandler) Catalog(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	catalog, err := h.svc.GetCatalog(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalog})
}

func (h *GamificationHandler) Mine(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	unlocked, err := h.svc.GetUnlocked(ctx, callerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": unlocked})
}

func (h *GamificationHandler) Leaderboard(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.svc.Leaderboard(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
