package models

import (
	"time"
)

// Achievement is a catalog entry; unlocks are tracked per user below.
type Achievement struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"uniqueIndex;not null" json:"code"` // first_post, helping_hand, ...
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	// Threshold is the point total at which the achievement unlocks.
	Threshold int    `gorm:"not null" json:"threshold"`
	IconURL   string `json:"icon_url"`
}

func (Achievement) TableName() string {
	return "achievements"
}

type UserAchievement struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement,priority:1" json:"user_id"`
	AchievementID int64     `gorm:"not null;uniqueIndex:idx_user_achievement,priority:2" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"autoCreateTime" json:"unlocked_at"`

	// Associations
	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
