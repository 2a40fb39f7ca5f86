package dto

import (
	"time"

	"mindhaven/internal/http-api/models"
)

// CreateReplyDTO for replying to a comment or to another reply.
// ParentID is optional: empty means the reply targets the root comment.
type CreateReplyDTO struct {
	Content  string `json:"content" binding:"required,max=5000"`
	ParentID string `json:"parent_id,omitempty"`
}

// UpdateReplyDTO for editing a reply
type UpdateReplyDTO struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// ReplyResponse is one node of a reconstructed reply tree.
type ReplyResponse struct {
	ID            string          `json:"id"`
	CommentID     string          `json:"comment_id"`
	ParentID      string          `json:"parent_id"`
	UserID        string          `json:"user_id"`
	Username      string          `json:"username"`
	AvatarURL     string          `json:"avatar_url"`
	ReplyToUserID string          `json:"reply_to_user_id"`
	Content       string          `json:"content"`
	Deleted       bool            `json:"deleted"`
	TotalLikes    int64           `json:"total_likes"`
	EditedAt      *time.Time      `json:"edited_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Replies       []ReplyResponse `json:"replies"`
}

// FromModelToReplyResponse converts a Reply model, leaving Replies empty for
// the tree builder to fill.
func FromModelToReplyResponse(reply *models.Reply, totalLikes int64) *ReplyResponse {
	parentID := ""
	if reply.ParentID != nil {
		parentID = *reply.ParentID
	}
	resp := &ReplyResponse{
		ID:            reply.ID,
		CommentID:     reply.CommentID,
		ParentID:      parentID,
		UserID:        reply.UserID,
		ReplyToUserID: reply.ReplyToUserID,
		Content:       reply.Content,
		Deleted:       reply.Deleted,
		TotalLikes:    totalLikes,
		EditedAt:      reply.EditedAt,
		CreatedAt:     reply.CreatedAt,
		Replies:       []ReplyResponse{},
	}
	if reply.Deleted {
		resp.Content = models.TombstoneContent
		resp.UserID = ""
		return resp
	}
	if reply.User != nil {
		resp.Username = reply.User.Username
		resp.AvatarURL = reply.User.AvatarURL
	}
	return resp
}

// ThreadResponse is a root comment with its full reply tree.
type ThreadResponse struct {
	Comment CommentResponse `json:"comment"`
	Replies []ReplyResponse `json:"replies"`
}
