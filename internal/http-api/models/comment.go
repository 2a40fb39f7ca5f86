package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TombstoneContent replaces the text of a soft-deleted comment or reply.
// The row keeps its id and ordinal position so reply chains stay intact.
const TombstoneContent = "[deleted]"

type Comment struct {
	ID          string      `gorm:"primaryKey;type:uuid" json:"id"`
	ContentID   string      `gorm:"type:uuid;not null;index:idx_comments_content" json:"content_id"`
	ContentType ContentType `gorm:"size:20;not null;index:idx_comments_content" json:"content_type"`
	UserID      string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Content     string      `gorm:"not null;type:text" json:"content"`
	EditedAt    *time.Time  `json:"edited_at,omitempty"`
	Deleted     bool        `gorm:"default:false" json:"deleted"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User    *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Replies []Reply `gorm:"foreignKey:CommentID" json:"replies,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}
