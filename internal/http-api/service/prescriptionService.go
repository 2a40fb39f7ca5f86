package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrNotTherapist         = errors.New("only therapists can issue prescriptions")
	ErrNotPrescriptionOwner = errors.New("only the issuing therapist can amend this prescription")
	ErrNotPrescriptionParty = errors.New("prescription belongs to another patient")
	ErrPatientNotFound      = errors.New("patient not found")
)

type PrescriptionService interface {
	Issue(ctx context.Context, therapistID, role string, req *dto.CreatePrescriptionDTO) (*dto.PrescriptionResponse, error)
	Amend(ctx context.Context, therapistID, prescriptionID string, req *dto.UpdatePrescriptionDTO) (*dto.PrescriptionResponse, error)
	GetByID(ctx context.Context, callerID, role, prescriptionID string) (*dto.PrescriptionResponse, error)
	ListForPatient(ctx context.Context, patientID string, page, pageSize int) (*dto.PaginatedPrescriptionResponse, error)
	ListForTherapist(ctx context.Context, therapistID string, page, pageSize int) (*dto.PaginatedPrescriptionResponse, error)
}

type prescriptionService struct {
	prescriptionRepo repository.PrescriptionRepository
	userRepo         repository.UserRepository
	notifier         NotificationService
}

func NewPrescriptionService(
	prescriptionRepo repository.PrescriptionRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
) PrescriptionService {
	return &prescriptionService{
		prescriptionRepo: prescriptionRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

func (s *prescriptionService) Issue(ctx context.Context, therapistID, role string, req *dto.CreatePrescriptionDTO) (*dto.PrescriptionResponse, error) {
	if role != models.RoleTherapist && role != models.RoleAdmin {
		return nil, ErrNotTherapist
	}

	patient, err := s.userRepo.FindByID(req.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	medications, err := encodeMedications(req.Medications)
	if err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		TherapistID: therapistID,
		PatientID:   patient.ID,
		Title:       req.Title,
		Notes:       req.Notes,
		Medications: medications,
	}
	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, patient.ID, therapistID, models.NotifyPrescription, "", prescription.ID, "", "issued you a new prescription"); err != nil {
		slog.Error("failed to notify patient of prescription", "error", err)
	}

	return dto.FromModelToPrescriptionResponse(prescription), nil
}

func (s *prescriptionService) Amend(ctx context.Context, therapistID, prescriptionID string, req *dto.UpdatePrescriptionDTO) (*dto.PrescriptionResponse, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, prescriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}
	if prescription.TherapistID != therapistID {
		return nil, ErrNotPrescriptionOwner
	}

	medications, err := encodeMedications(req.Medications)
	if err != nil {
		return nil, err
	}

	prescription.Title = req.Title
	prescription.Notes = req.Notes
	prescription.Medications = medications
	if err := s.prescriptionRepo.Update(ctx, prescription); err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, prescription.PatientID, therapistID, models.NotifyPrescription, "", prescription.ID, "", "updated your prescription"); err != nil {
		slog.Error("failed to notify patient of amendment", "error", err)
	}

	return dto.FromModelToPrescriptionResponse(prescription), nil
}

// GetByID enforces that only the issuing therapist, the patient, or an admin
// can read a prescription record.
func (s *prescriptionService) GetByID(ctx context.Context, callerID, role, prescriptionID string) (*dto.PrescriptionResponse, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, prescriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}

	if callerID != prescription.PatientID && callerID != prescription.TherapistID && role != models.RoleAdmin {
		return nil, ErrNotPrescriptionParty
	}
	return dto.FromModelToPrescriptionResponse(prescription), nil
}

func (s *prescriptionService) ListForPatient(ctx context.Context, patientID string, page, pageSize int) (*dto.PaginatedPrescriptionResponse, error) {
	prescriptions, total, err := s.prescriptionRepo.GetByPatient(ctx, patientID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return paginatePrescriptions(prescriptions, total, page, pageSize), nil
}

func (s *prescriptionService) ListForTherapist(ctx context.Context, therapistID string, page, pageSize int) (*dto.PaginatedPrescriptionResponse, error) {
	prescriptions, total, err := s.prescriptionRepo.GetByTherapist(ctx, therapistID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return paginatePrescriptions(prescriptions, total, page, pageSize), nil
}

func encodeMedications(entries []dto.MedicationEntry) (string, error) {
	if len(entries) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func paginatePrescriptions(prescriptions []models.Prescription, total int64, page, pageSize int) *dto.PaginatedPrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, 0, len(prescriptions))
	for i := range prescriptions {
		responses = append(responses, *dto.FromModelToPrescriptionResponse(&prescriptions[i]))
	}
	return dto.NewPaginatedPrescriptionResponse(responses, int(total), page, pageSize)
}
