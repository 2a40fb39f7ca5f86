package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationKind names the action that produced a notification.
type NotificationKind string

const (
	NotifyComment       NotificationKind = "comment"
	NotifyReply         NotificationKind = "reply"
	NotifyReaction      NotificationKind = "reaction"
	NotifyCommentLiked  NotificationKind = "comment_liked"
	NotifyReplyLiked    NotificationKind = "reply_liked"
	NotifyAnswer        NotificationKind = "answer"
	NotifyAchievement   NotificationKind = "achievement"
	NotifyPrescription  NotificationKind = "prescription"
)

// IsLikedKind reports whether the kind belongs to the "liked" family.
// Liked kinds are deduplicated against an existing unseen notification so
// repeated like/unlike toggling does not spam the recipient; comment and
// reply kinds always produce a fresh row.
func (k NotificationKind) IsLikedKind() bool {
	switch k {
	case NotifyReaction, NotifyCommentLiked, NotifyReplyLiked:
		return true
	}
	return false
}

// Notification rows reference their actor and root context through nullable
// uuid columns: system-generated kinds (achievements) have no acting user.
// ContentID is plain text because it also carries non-uuid target ids such
// as achievement catalog numbers.
type Notification struct {
	ID          string           `gorm:"primaryKey;type:uuid" json:"id"`
	RecipientID string           `gorm:"type:uuid;not null;index" json:"recipient_id"`
	ActorID     *string          `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	Kind        NotificationKind `gorm:"size:30;not null" json:"kind"`
	ContentType ContentType      `gorm:"size:20;not null" json:"content_type"`
	ContentID   string           `gorm:"type:text;not null" json:"content_id"`
	// RootID points at the top-level content item (post, video, ...) that
	// contextualizes the notification, for client-side navigation.
	RootID    *string   `gorm:"type:uuid" json:"root_id,omitempty"`
	Message   string    `gorm:"type:text" json:"message"`
	Seen      bool      `gorm:"default:false;index" json:"seen"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}

func (Notification) TableName() string {
	return "notifications"
}
