package dto

import (
	"time"

	"mindhaven/internal/http-api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// CommentResponse is one enriched node of a thread listing. TotalReplies and
// TotalLikes are computed at read time, never stored on the comment row.
type CommentResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Username     string     `json:"username"`
	AvatarURL    string     `json:"avatar_url"`
	Content      string     `json:"content"`
	Deleted      bool       `json:"deleted"`
	TotalReplies int64      `json:"total_replies"`
	TotalLikes   int64      `json:"total_likes"`
	EditedAt     *time.Time `json:"edited_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO.
// Tombstoned comments expose the placeholder text and no author identity.
func FromModelToCommentResponse(comment *models.Comment, totalReplies, totalLikes int64) *CommentResponse {
	resp := &CommentResponse{
		ID:           comment.ID,
		UserID:       comment.UserID,
		Content:      comment.Content,
		Deleted:      comment.Deleted,
		TotalReplies: totalReplies,
		TotalLikes:   totalLikes,
		EditedAt:     comment.EditedAt,
		CreatedAt:    comment.CreatedAt,
	}
	if comment.Deleted {
		resp.Content = models.TombstoneContent
		resp.UserID = ""
		return resp
	}
	if comment.User != nil {
		resp.Username = comment.User.Username
		resp.AvatarURL = comment.User.AvatarURL
	}
	return resp
}

// PaginatedCommentResponse for returning one page of a thread
type PaginatedCommentResponse struct {
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []CommentResponse, total, page, pageSize int) *PaginatedCommentResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
