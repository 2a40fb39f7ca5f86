package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"not null;type:text" json:"body"`
	Category  string    `gorm:"size:50;index" json:"category"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return
}

func (Question) TableName() string {
	return "questions"
}

// Answer is reactable and commentable content in its own right (ContentAnswer).
type Answer struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	QuestionID string    `gorm:"type:uuid;not null;index" json:"question_id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Body       string    `gorm:"not null;type:text" json:"body"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

func (Answer) TableName() string {
	return "answers"
}
