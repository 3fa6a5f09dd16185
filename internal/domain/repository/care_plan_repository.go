package repository

import (
	"context"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
)

// CarePlanRepository defines the interface for care plan data operations
type CarePlanRepository interface {
	Create(ctx context.Context, plan *entity.CarePlan) error
	GetByID(ctx context.Context, id uint) (*entity.CarePlan, error)
	GetActiveByPatient(ctx context.Context, patientID uint) (*entity.CarePlan, error)
	ListByPatient(ctx context.Context, patientID uint) ([]entity.CarePlan, error)
	Update(ctx context.Context, plan *entity.CarePlan) error
	Delete(ctx context.Context, id uint) error
}
