package service

import (
	"context"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/apperror"
	"github.com/quirodesk/clinica-api/pkg/dates"
	"github.com/quirodesk/clinica-api/pkg/pagination"
)

// searchResultLimit caps the live-search dropdown at a screenful of rows.
const searchResultLimit = 50

// PatientService handles patient-related operations
type PatientService struct {
	patientRepo      repository.PatientRepository
	practitionerRepo repository.PractitionerRepository
}

// NewPatientService creates a new patient service
func NewPatientService(
	patientRepo repository.PatientRepository,
	practitionerRepo repository.PractitionerRepository,
) *PatientService {
	return &PatientService{
		patientRepo:      patientRepo,
		practitionerRepo: practitionerRepo,
	}
}

// PatientSummary is a search hit: the identifying fields the selector renders.
type PatientSummary struct {
	ID       uint   `json:"id_px"`
	FullName string `json:"nombre_completo"`
	Age      int    `json:"edad"`
	Mobile   string `json:"cel,omitempty"`
}

// CreatePatient registers a new patient after checking the practitioner exists
func (s *PatientService) CreatePatient(ctx context.Context, patient *entity.Patient) (*entity.Patient, error) {
	practitioner, err := s.practitionerRepo.GetByID(ctx, patient.PractitionerID)
	if err != nil {
		return nil, err
	}
	if practitioner == nil {
		return nil, apperror.NewBadRequestError("Practitioner does not exist")
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// GetPatient retrieves a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id uint) (*entity.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return patient, nil
}

// UpdatePatient updates an existing patient record
func (s *PatientService) UpdatePatient(ctx context.Context, patient *entity.Patient) (*entity.Patient, error) {
	existing, err := s.patientRepo.GetByID(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// ListPatients lists patients with pagination and an optional name filter
func (s *PatientService) ListPatients(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Patient, int64, error) {
	return s.patientRepo.List(ctx, params, search)
}

// SearchPatients runs the live name search backing the patient selector.
// Empty terms return no rows rather than the whole table.
func (s *PatientService) SearchPatients(ctx context.Context, term string) ([]PatientSummary, error) {
	if term == "" {
		return []PatientSummary{}, nil
	}

	patients, err := s.patientRepo.Search(ctx, term, searchResultLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]PatientSummary, 0, len(patients))
	for i := range patients {
		summaries = append(summaries, summarize(&patients[i]))
	}
	return summaries, nil
}

// GetRecentPatients returns the most recently registered patients
func (s *PatientService) GetRecentPatients(ctx context.Context, limit int) ([]PatientSummary, error) {
	if limit <= 0 || limit > searchResultLimit {
		limit = 10
	}

	patients, err := s.patientRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]PatientSummary, 0, len(patients))
	for i := range patients {
		summaries = append(summaries, summarize(&patients[i]))
	}
	return summaries, nil
}

func summarize(p *entity.Patient) PatientSummary {
	summary := PatientSummary{
		ID:       p.ID,
		FullName: p.FullName(),
		Age:      -1,
	}
	if p.BirthDate != nil {
		summary.Age = dates.AgeToday(*p.BirthDate)
	}
	if p.MobilePhone != nil {
		summary.Mobile = *p.MobilePhone
	}
	return summary
}
