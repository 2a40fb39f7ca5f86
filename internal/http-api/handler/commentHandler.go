package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"
	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves comment threads for every commentable domain plus the
// per-comment edit/delete/reply routes under /comments.
type CommentHandler struct {
	commentSvc service.CommentService
	replySvc   service.ReplyService
}

func NewCommentHandler(commentSvc service.CommentService, replySvc service.ReplyService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc, replySvc: replySvc}
}

// RegisterThreadRoutes mounts the thread endpoints under a domain group.
func (h *CommentHandler) RegisterThreadRoutes(rg *gin.RouterGroup, contentType models.ContentType, paramName string, authRequired gin.HandlerFunc) {
	base := "/:" + paramName + "/comments"
	rg.GET(base, h.thread(contentType, paramName))
	rg.POST(base, authRequired, h.create(contentType, paramName))
}

// RegisterCommentRoutes mounts the routes addressed by comment id.
func (h *CommentHandler) RegisterCommentRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("/:comment_id/thread", h.replyThread)
	rg.POST("/:comment_id/replies", authRequired, h.reply)
	rg.PUT("/:comment_id", authRequired, h.edit)
	rg.DELETE("/:comment_id", authRequired, h.remove)
}

func (h *CommentHandler) create(contentType models.ContentType, paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateCommentDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		comment, err := h.commentSvc.Create(ctx, callerID(c), c.Param(paramName), contentType, req.Content)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyContent):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, service.ErrContentNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

func (h *CommentHandler) thread(contentType models.ContentType, paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := parsePagination(c)
		sort := repository.CommentSort(c.DefaultQuery("sort", string(repository.SortNewest)))
		if sort != repository.SortNewest && sort != repository.SortMostLiked {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort, must be one of: newest, most_liked"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		thread, err := h.commentSvc.GetThread(ctx, c.Param(paramName), contentType, page, pageSize, sort)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, thread)
	}
}

func (h *CommentHandler) replyThread(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	thread, err := h.replySvc.GetThread(ctx, c.Param("comment_id"))
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (h *CommentHandler) reply(c *gin.Context) {
	var req dto.CreateReplyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reply, err := h.replySvc.Create(ctx, callerID(c), c.Param("comment_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyContent), errors.Is(err, service.ErrParentNotInThread):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCommentNotFound), errors.Is(err, service.ErrReplyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (h *CommentHandler) edit(c *gin.Context) {
	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment, err := h.commentSvc.Edit(ctx, callerID(c), c.Param("comment_id"), req.Content)
	if err != nil {
		h.writeCommentError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) remove(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.commentSvc.SoftDelete(ctx, callerID(c), c.Param("comment_id")); err != nil {
		h.writeCommentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) writeCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	case errors.Is(err, service.ErrNotCommentAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCommentDeleted), errors.Is(err, service.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
