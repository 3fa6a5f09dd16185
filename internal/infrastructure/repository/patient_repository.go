package repository

import (
	"context"
	"errors"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	domainRepo "github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/pagination"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) GetByID(ctx context.Context, id uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).First(&patient, "id_px = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &patient, err
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Patient{}, "id_px = ?", id).Error
}

func (r *patientRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Patient, int64, error) {
	var patients []entity.Patient
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Patient{})
	if search != "" {
		query = query.Where("nombre ILIKE ? OR apellidop ILIKE ? OR apellidom ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("apellidop ASC, apellidom ASC, nombre ASC").
		Find(&patients).Error

	return patients, total, err
}

func (r *patientRepository) Search(ctx context.Context, term string, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).
		Where("nombre ILIKE ? OR apellidop ILIKE ? OR apellidom ILIKE ?",
			"%"+term+"%", "%"+term+"%", "%"+term+"%").
		Order("apellidop ASC, apellidom ASC, nombre ASC").
		Limit(limit).
		Find(&patients).Error
	return patients, err
}

func (r *patientRepository) GetRecent(ctx context.Context, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).
		Order("fecha DESC, id_px DESC").
		Limit(limit).
		Find(&patients).Error
	return patients, err
}

type practitionerRepository struct {
	db *gorm.DB
}

// NewPractitionerRepository creates a new practitioner repository
func NewPractitionerRepository(db *gorm.DB) domainRepo.PractitionerRepository {
	return &practitionerRepository{db: db}
}

func (r *practitionerRepository) Create(ctx context.Context, practitioner *entity.Practitioner) error {
	return r.db.WithContext(ctx).Create(practitioner).Error
}

func (r *practitionerRepository) GetByID(ctx context.Context, id uint) (*entity.Practitioner, error) {
	var practitioner entity.Practitioner
	err := r.db.WithContext(ctx).Preload("Clinic").First(&practitioner, "id_dr = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &practitioner, err
}

func (r *practitionerRepository) Update(ctx context.Context, practitioner *entity.Practitioner) error {
	return r.db.WithContext(ctx).Save(practitioner).Error
}

func (r *practitionerRepository) List(ctx context.Context) ([]entity.Practitioner, error) {
	var practitioners []entity.Practitioner
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&practitioners).Error
	return practitioners, err
}

type clinicRepository struct {
	db *gorm.DB
}

// NewClinicRepository creates a new clinic repository
func NewClinicRepository(db *gorm.DB) domainRepo.ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *entity.Clinic) error {
	return r.db.WithContext(ctx).Create(clinic).Error
}

func (r *clinicRepository) GetByID(ctx context.Context, id uint) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := r.db.WithContext(ctx).First(&clinic, "id_centro = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &clinic, err
}

func (r *clinicRepository) List(ctx context.Context) ([]entity.Clinic, error) {
	var clinics []entity.Clinic
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&clinics).Error
	return clinics, err
}
