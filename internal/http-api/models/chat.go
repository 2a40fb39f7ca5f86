package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatRoom is a topic support room (anxiety, depression, ...), not a DM.
type ChatRoom struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Topic       string    `gorm:"size:50" json:"topic"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *ChatRoom) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}

type ChatMessage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    string    `gorm:"type:uuid;not null;index:idx_chat_messages_room_id" json:"room_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName  string    `gorm:"not null" json:"user_name"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Associations
	User *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room *ChatRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
