package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentType tags which domain owns a piece of reactable/commentable content.
// Adding a new domain means adding a constant here and a resolver branch for it.
type ContentType string

const (
	ContentPost    ContentType = "post"
	ContentVideo   ContentType = "video"
	ContentAnswer  ContentType = "answer"
	ContentStory   ContentType = "story"
	ContentComment ContentType = "comment"
	ContentReply   ContentType = "reply"
)

var contentTypes = map[ContentType]bool{
	ContentPost:    true,
	ContentVideo:   true,
	ContentAnswer:  true,
	ContentStory:   true,
	ContentComment: true,
	ContentReply:   true,
}

// IsValid reports whether the content type is one of the known domains.
func (ct ContentType) IsValid() bool {
	return contentTypes[ct]
}

// ReactionKind is the fixed set of emotional responses a user can attach to content.
type ReactionKind string

const (
	KindLike       ReactionKind = "like"
	KindHeart      ReactionKind = "heart"
	KindHaha       ReactionKind = "haha"
	KindWow        ReactionKind = "wow"
	KindSupport    ReactionKind = "support"
	KindRelate     ReactionKind = "relate"
	KindAgree      ReactionKind = "agree"
	KindSad        ReactionKind = "sad"
	KindAngry      ReactionKind = "angry"
	KindInsightful ReactionKind = "insightful"
)

// ReactionKinds lists every valid kind in a stable order, used to build
// zero-filled count maps so responses always carry the full per-kind breakdown.
var ReactionKinds = []ReactionKind{
	KindLike, KindHeart, KindHaha, KindWow, KindSupport,
	KindRelate, KindAgree, KindSad, KindAngry, KindInsightful,
}

var reactionKinds = func() map[ReactionKind]bool {
	m := make(map[ReactionKind]bool, len(ReactionKinds))
	for _, k := range ReactionKinds {
		m[k] = true
	}
	return m
}()

func (k ReactionKind) IsValid() bool {
	return reactionKinds[k]
}

// Reaction is the single source of truth for all likes/reactions across every
// content domain. The composite unique index enforces at most one reaction per
// (content, user) tuple; concurrent inserts surface as a duplicate-key error
// that the service layer recovers as an update.
type Reaction struct {
	ID          string       `gorm:"primaryKey;type:uuid" json:"id"`
	ContentID   string       `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_content_user,priority:1;index:idx_reactions_lookup" json:"content_id"`
	ContentType ContentType  `gorm:"size:20;not null;uniqueIndex:idx_reactions_content_user,priority:2;index:idx_reactions_lookup" json:"content_type"`
	UserID      string       `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_content_user,priority:3;index" json:"user_id"`
	Kind        ReactionKind `gorm:"size:20;not null" json:"kind"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Reaction) TableName() string {
	return "reactions"
}
