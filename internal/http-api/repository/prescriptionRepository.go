package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	Update(ctx context.Context, prescription *models.Prescription) error
	GetByID(ctx context.Context, prescriptionID string) (*models.Prescription, error)
	GetByPatient(ctx context.Context, patientID string, page, pageSize int) ([]models.Prescription, int64, error)
	GetByTherapist(ctx context.Context, therapistID string, page, pageSize int) ([]models.Prescription, int64, error)
}

type prescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *models.Prescription) error {
	return r.db.WithContext(ctx).Save(prescription).Error
}

func (r *prescriptionRepository) GetByID(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.WithContext(ctx).
		Where("id = ?", prescriptionID).
		Preload("Therapist").
		Preload("Patient").
		First(&prescription).Error
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) GetByPatient(ctx context.Context, patientID string, page, pageSize int) ([]models.Prescription, int64, error) {
	return r.paginate(ctx, "patient_id = ?", patientID, page, pageSize)
}

func (r *prescriptionRepository) GetByTherapist(ctx context.Context, therapistID string, page, pageSize int) ([]models.Prescription, int64, error) {
	return r.paginate(ctx, "therapist_id = ?", therapistID, page, pageSize)
}

func (r *prescriptionRepository) paginate(ctx context.Context, cond, arg string, page, pageSize int) ([]models.Prescription, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Prescription{}).
		Where(cond, arg).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	var prescriptions []models.Prescription
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Preload("Therapist").
		Preload("Patient").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&prescriptions).Error
	if err != nil {
		return nil, 0, err
	}
	return prescriptions, total, nil
}
