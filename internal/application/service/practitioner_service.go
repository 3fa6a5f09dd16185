package service

import (
	"context"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/apperror"
)

// PractitionerService handles practitioner and clinic branch lookups
type PractitionerService struct {
	practitionerRepo repository.PractitionerRepository
	clinicRepo       repository.ClinicRepository
}

// NewPractitionerService creates a new practitioner service
func NewPractitionerService(
	practitionerRepo repository.PractitionerRepository,
	clinicRepo repository.ClinicRepository,
) *PractitionerService {
	return &PractitionerService{
		practitionerRepo: practitionerRepo,
		clinicRepo:       clinicRepo,
	}
}

// ListPractitioners lists all practitioners for the attending-doctor selector
func (s *PractitionerService) ListPractitioners(ctx context.Context) ([]entity.Practitioner, error) {
	return s.practitionerRepo.List(ctx)
}

// GetPractitioner retrieves a practitioner by ID
func (s *PractitionerService) GetPractitioner(ctx context.Context, id uint) (*entity.Practitioner, error) {
	practitioner, err := s.practitionerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if practitioner == nil {
		return nil, apperror.NewNotFoundError("Practitioner")
	}
	return practitioner, nil
}

// ListClinics lists the clinic branches
func (s *PractitionerService) ListClinics(ctx context.Context) ([]entity.Clinic, error) {
	return s.clinicRepo.List(ctx)
}
