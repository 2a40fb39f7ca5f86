package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersonalStory is a longer-form recovery story. Anonymous stories keep their
// author row for ownership checks but read DTOs hide the identity.
type PersonalStory struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"not null;type:text" json:"body"`
	Anonymous bool      `gorm:"default:false" json:"anonymous"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (s *PersonalStory) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

func (PersonalStory) TableName() string {
	return "personal_stories"
}
