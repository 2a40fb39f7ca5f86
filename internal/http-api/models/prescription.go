package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Prescription struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	TherapistID string    `gorm:"type:uuid;not null;index" json:"therapist_id"`
	PatientID   string    `gorm:"type:uuid;not null;index" json:"patient_id"`
	Title       string    `gorm:"not null" json:"title"`
	Notes       string    `gorm:"type:text" json:"notes"`
	// Medications is a JSON array of {name, dosage, schedule} entries.
	Medications string    `gorm:"type:jsonb;default:'[]'" json:"medications"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Therapist *User `gorm:"foreignKey:TherapistID" json:"therapist,omitempty"`
	Patient   *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (Prescription) TableName() string {
	return "prescriptions"
}
