package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reply is a flat row in a comment thread. ParentID points at the reply that
// was answered and is NULL when the reply sits directly under the root
// comment. CommentID always resolves to the thread's root comment regardless
// of nesting depth, so the whole thread can be fetched in one flat query and
// the tree rebuilt from the ParentID back-pointers.
type Reply struct {
	ID          string      `gorm:"primaryKey;type:uuid" json:"id"`
	CommentID   string      `gorm:"type:uuid;not null;index" json:"comment_id"`
	ParentID    *string     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	ContentID   string      `gorm:"type:uuid;not null" json:"content_id"`
	ContentType ContentType `gorm:"size:20;not null" json:"content_type"`
	UserID      string      `gorm:"type:uuid;not null;index" json:"user_id"`
	// ReplyToUserID is the author of the node this reply addresses; it is the
	// notification recipient, not the owner of the parent content item.
	ReplyToUserID string     `gorm:"type:uuid;not null" json:"reply_to_user_id"`
	Content       string     `gorm:"not null;type:text" json:"content"`
	EditedAt      *time.Time `json:"edited_at,omitempty"`
	Deleted       bool       `gorm:"default:false" json:"deleted"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (r *Reply) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Reply) TableName() string {
	return "replies"
}
