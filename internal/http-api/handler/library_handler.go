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

// LibraryHandler serves the video library: videos, materials, playlists.
type LibraryHandler struct {
	svc service.VideoService
}

func NewLibraryHandler(svc service.VideoService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

func (h *LibraryHandler) RegisterVideoRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("/", h.ListVideos)
	rg.GET("/:video_id", h.GetVideo)
	rg.POST("/", authRequired, h.AddVideo)
	rg.DELETE("/:video_id", authRequired, h.RemoveVideo)
	rg.GET("/:video_id/materials", h.ListMaterials)
	rg.POST("/:video_id/materials", authRequired, h.AddMaterial)
}

func (h *LibraryHandler) RegisterPlaylistRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("/", h.ListPlaylists)
	rg.GET("/:playlist_id", h.GetPlaylist)
	rg.POST("/", authRequired, h.CreatePlaylist)
	rg.DELETE("/:playlist_id", authRequired, h.DeletePlaylist)
	rg.POST("/:playlist_id/items", authRequired, h.AddToPlaylist)
	rg.DELETE("/:playlist_id/items/:video_id", authRequired, h.RemoveFromPlaylist)
}

func (h *LibraryHandler) ListVideos(c *gin.Context) {
	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	videos, err := h.svc.ListVideos(ctx, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *LibraryHandler) GetVideo(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	video, err := h.svc.GetVideo(ctx, c.Param("video_id"))
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *LibraryHandler) AddVideo(c *gin.Context) {
	var req dto.CreateVideoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	video, err := h.svc.AddVideo(ctx, callerID(c), callerRole(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrNotCurator) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, video)
}

func (h *LibraryHandler) RemoveVideo(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.RemoveVideo(ctx, callerRole(c), c.Param("video_id")); err != nil {
		switch {
		case errors.Is(err, service.ErrNotCurator):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrVideoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LibraryHandler) AddMaterial(c *gin.Context) {
	var req dto.CreateMaterialDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	material, err := h.svc.AddMaterial(ctx, callerRole(c), c.Param("video_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotCurator):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrVideoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, material)
}

func (h *LibraryHandler) ListMaterials(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	materials, err := h.svc.ListMaterials(ctx, c.Param("video_id"))
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": materials})
}

func (h *LibraryHandler) ListPlaylists(c *gin.Context) {
	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	playlists, total, err := h.svc.ListPlaylists(ctx, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": playlists,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		},
	})
}

func (h *LibraryHandler) GetPlaylist(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	playlist, err := h.svc.GetPlaylist(ctx, c.Param("playlist_id"))
	if err != nil {
		if errors.Is(err, service.ErrPlaylistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "playlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, playlist)
}

func (h *LibraryHandler) CreatePlaylist(c *gin.Context) {
	var req dto.CreatePlaylistDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	playlist, err := h.svc.CreatePlaylist(ctx, callerID(c), callerRole(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrNotCurator) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, playlist)
}

func (h *LibraryHandler) DeletePlaylist(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeletePlaylist(ctx, callerID(c), c.Param("playlist_id")); err != nil {
		h.writePlaylistError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LibraryHandler) AddToPlaylist(c *gin.Context) {
	var req dto.AddPlaylistItemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.AddToPlaylist(ctx, callerID(c), c.Param("playlist_id"), &req); err != nil {
		h.writePlaylistError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *LibraryHandler) RemoveFromPlaylist(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.RemoveFromPlaylist(ctx, callerID(c), c.Param("playlist_id"), c.Param("video_id")); err != nil {
		h.writePlaylistError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LibraryHandler) writePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound), errors.Is(err, service.ErrVideoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotPlaylistOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
