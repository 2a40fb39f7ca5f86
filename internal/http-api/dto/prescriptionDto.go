package dto

import (
	"time"

	"mindhaven/internal/http-api/models"
)

// MedicationEntry is one line of a prescription's medication list.
type MedicationEntry struct {
	Name     string `json:"name" binding:"required,max=200"`
	Dosage   string `json:"dosage" binding:"required,max=100"`
	Schedule string `json:"schedule" binding:"omitempty,max=200"`
}

// CreatePrescriptionDTO for a therapist issuing a prescription record
type CreatePrescriptionDTO struct {
	PatientID   string            `json:"patient_id" binding:"required,uuid"`
	Title       string            `json:"title" binding:"required,max=200"`
	Notes       string            `json:"notes" binding:"omitempty,max=5000"`
	Medications []MedicationEntry `json:"medications" binding:"omitempty,dive"`
}

// UpdatePrescriptionDTO for amending notes/medications
type UpdatePrescriptionDTO struct {
	Title       string            `json:"title" binding:"required,max=200"`
	Notes       string            `json:"notes" binding:"omitempty,max=5000"`
	Medications []MedicationEntry `json:"medications" binding:"omitempty,dive"`
}

// PrescriptionResponse for returning a prescription record
type PrescriptionResponse struct {
	ID            string    `json:"id"`
	TherapistID   string    `json:"therapist_id"`
	TherapistName string    `json:"therapist_name"`
	PatientID     string    `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	Title         string    `json:"title"`
	Notes         string    `json:"notes"`
	Medications   string    `json:"medications"` // JSON array
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromModelToPrescriptionResponse(p *models.Prescription) *PrescriptionResponse {
	resp := &PrescriptionResponse{
		ID:          p.ID,
		TherapistID: p.TherapistID,
		PatientID:   p.PatientID,
		Title:       p.Title,
		Notes:       p.Notes,
		Medications: p.Medications,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Therapist != nil {
		resp.TherapistName = p.Therapist.Username
	}
	if p.Patient != nil {
		resp.PatientName = p.Patient.Username
	}
	return resp
}

// PaginatedPrescriptionResponse for returning paginated prescriptions
type PaginatedPrescriptionResponse struct {
	Data       []PrescriptionResponse `json:"data"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	Total      int                    `json:"total"`
	TotalPages int                    `json:"total_pages"`
}

func NewPaginatedPrescriptionResponse(data []PrescriptionResponse, total, page, pageSize int) *PaginatedPrescriptionResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedPrescriptionResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
