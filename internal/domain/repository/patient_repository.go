package repository

import (
	"context"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/pkg/pagination"
)

// PatientRepository defines the interface for patient data operations
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id uint) (*entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Patient, int64, error)
	// Search matches term against first name and both surnames, ordered by
	// surname then first name, capped at limit rows.
	Search(ctx context.Context, term string, limit int) ([]entity.Patient, error)
	// GetRecent returns the most recently registered patients.
	GetRecent(ctx context.Context, limit int) ([]entity.Patient, error)
}

// PractitionerRepository defines the interface for practitioner data operations
type PractitionerRepository interface {
	Create(ctx context.Context, practitioner *entity.Practitioner) error
	GetByID(ctx context.Context, id uint) (*entity.Practitioner, error)
	Update(ctx context.Context, practitioner *entity.Practitioner) error
	List(ctx context.Context) ([]entity.Practitioner, error)
}

// ClinicRepository defines the interface for clinic branch data operations
type ClinicRepository interface {
	Create(ctx context.Context, clinic *entity.Clinic) error
	GetByID(ctx context.Context, id uint) (*entity.Clinic, error)
	List(ctx context.Context) ([]entity.Clinic, error)
}
