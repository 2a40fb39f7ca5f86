package dto

import (
	"time"

	"mindhaven/internal/http-api/models"
)

// NotificationResponse is the read shape for one notification
type NotificationResponse struct {
	ID          string                  `json:"id"`
	Kind        models.NotificationKind `json:"kind"`
	ActorID     string                  `json:"actor_id"`
	ActorName   string                  `json:"actor_name"`
	ContentType models.ContentType      `json:"content_type"`
	ContentID   string                  `json:"content_id"`
	RootID      string                  `json:"root_id,omitempty"`
	Message     string                  `json:"message"`
	Seen        bool                    `json:"seen"`
	CreatedAt   time.Time               `json:"created_at"`
}

// FromModelToNotificationResponse converts a Notification with preloaded Actor
func FromModelToNotificationResponse(n *models.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:          n.ID,
		Kind:        n.Kind,
		ContentType: n.ContentType,
		ContentID:   n.ContentID,
		Message:     n.Message,
		Seen:        n.Seen,
		CreatedAt:   n.CreatedAt,
	}
	if n.ActorID != nil {
		resp.ActorID = *n.ActorID
	}
	if n.RootID != nil {
		resp.RootID = *n.RootID
	}
	if n.Actor != nil {
		resp.ActorName = n.Actor.Username
	}
	return resp
}

// PaginatedNotificationResponse for the notification inbox
type PaginatedNotificationResponse struct {
	Data       []NotificationResponse `json:"data"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	Total      int                    `json:"total"`
	TotalPages int                    `json:"total_pages"`
	Unseen     int64                  `json:"unseen"`
}

// NewPaginatedNotificationResponse creates a paginated notification response
func NewPaginatedNotificationResponse(data []NotificationResponse, total, page, pageSize int, unseen int64) *PaginatedNotificationResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedNotificationResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		Unseen:     unseen,
	}
}
