package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Video struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"` // uploader (therapist/admin)
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	URL          string    `gorm:"not null" json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     int       `json:"duration"` // seconds
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Materials []Material `gorm:"foreignKey:VideoID" json:"materials,omitempty"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}

func (Video) TableName() string {
	return "videos"
}

// Material is a supporting attachment (worksheet, article link) on a video.
type Material struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	VideoID   string    `gorm:"type:uuid;not null;index" json:"video_id"`
	Title     string    `gorm:"not null" json:"title"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *Material) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (Material) TableName() string {
	return "materials"
}

type Playlist struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"` // curator
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Items []PlaylistItem `gorm:"foreignKey:PlaylistID" json:"items,omitempty"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistItem orders a video inside a playlist.
type PlaylistItem struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PlaylistID string `gorm:"type:uuid;not null;uniqueIndex:idx_playlist_video,priority:1" json:"playlist_id"`
	VideoID    string `gorm:"type:uuid;not null;uniqueIndex:idx_playlist_video,priority:2" json:"video_id"`
	Position   int    `gorm:"not null" json:"position"`

	// Associations
	Video *Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (PlaylistItem) TableName() string {
	return "playlist_items"
}
