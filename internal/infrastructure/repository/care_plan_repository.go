package repository

import (
	"context"
	"errors"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	domainRepo "github.com/quirodesk/clinica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type carePlanRepository struct {
	db *gorm.DB
}

// NewCarePlanRepository creates a new care plan repository
func NewCarePlanRepository(db *gorm.DB) domainRepo.CarePlanRepository {
	return &carePlanRepository{db: db}
}

func (r *carePlanRepository) Create(ctx context.Context, plan *entity.CarePlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *carePlanRepository) GetByID(ctx context.Context, id uint) (*entity.CarePlan, error) {
	var plan entity.CarePlan
	err := r.db.WithContext(ctx).First(&plan, "id_plan = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *carePlanRepository) GetActiveByPatient(ctx context.Context, patientID uint) (*entity.CarePlan, error) {
	var plan entity.CarePlan
	err := r.db.WithContext(ctx).
		Where("id_px = ?", patientID).
		Order("fecha DESC, id_plan DESC").
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *carePlanRepository) ListByPatient(ctx context.Context, patientID uint) ([]entity.CarePlan, error) {
	var plans []entity.CarePlan
	err := r.db.WithContext(ctx).
		Where("id_px = ?", patientID).
		Order("fecha DESC, id_plan DESC").
		Find(&plans).Error
	return plans, err
}

func (r *carePlanRepository) Update(ctx context.Context, plan *entity.CarePlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *carePlanRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.CarePlan{}, "id_plan = ?", id).Error
}
