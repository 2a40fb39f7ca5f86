package dto

import (
	"time"

	"mindhaven/internal/http-api/models"
)

// CreateRoomDTO for opening a topic support room (admin)
type CreateRoomDTO struct {
	Name        string `json:"name" binding:"required,max=100"`
	Topic       string `json:"topic" binding:"omitempty,max=50"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// RoomResponse for returning chat room information
type RoomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Topic       string    `json:"topic"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModelToRoomResponse(room *models.ChatRoom) *RoomResponse {
	return &RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Topic:       room.Topic,
		Description: room.Description,
		CreatedAt:   room.CreatedAt,
	}
}

// ChatMessageResponse is one persisted room message.
type ChatMessageResponse struct {
	ID        int64     `json:"id"`
	RoomID    string    `json:"room_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToChatMessageResponse(m *models.ChatMessage) *ChatMessageResponse {
	return &ChatMessageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		UserID:    m.UserID,
		UserName:  m.UserName,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
