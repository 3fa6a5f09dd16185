package service

import (
	"context"
	"math"
	"time"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/apperror"
)

// CarePlanService handles treatment plan operations
type CarePlanService struct {
	planRepo         repository.CarePlanRepository
	patientRepo      repository.PatientRepository
	practitionerRepo repository.PractitionerRepository
}

// NewCarePlanService creates a new care plan service
func NewCarePlanService(
	planRepo repository.CarePlanRepository,
	patientRepo repository.PatientRepository,
	practitionerRepo repository.PractitionerRepository,
) *CarePlanService {
	return &CarePlanService{
		planRepo:         planRepo,
		patientRepo:      patientRepo,
		practitionerRepo: practitionerRepo,
	}
}

// CreateCarePlanInput represents the quoted plan form
type CreateCarePlanInput struct {
	PatientID       uint
	PractitionerID  uint
	Date            time.Time
	Diagnosis       *string
	ChiroVisits     int
	ChiroUnitCost   float64
	TherapyVisits   int
	TherapyUnitCost float64
	PromoPercent    float64
	Stage           *string
	AddonIDs        *string
	Notes           *string
}

// PlanQuote is the cost breakdown of a care plan quote
type PlanQuote struct {
	Gross   float64 `json:"inversion_bruta"`
	Savings float64 `json:"ahorro_calculado"`
	Net     float64 `json:"inversion_total"`
}

// QuotePlan computes the quoted figures: visits at their session prices,
// the promotional percentage taken off the gross, and the net investment.
func QuotePlan(chiroVisits int, chiroCost float64, therapyVisits int, therapyCost float64, promoPercent float64) PlanQuote {
	gross := float64(chiroVisits)*chiroCost + float64(therapyVisits)*therapyCost
	savings := roundCents(gross * promoPercent / 100)
	return PlanQuote{
		Gross:   roundCents(gross),
		Savings: savings,
		Net:     roundCents(gross - savings),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateCarePlan validates and persists a quoted plan
func (s *CarePlanService) CreateCarePlan(ctx context.Context, input *CreateCarePlanInput) (*entity.CarePlan, error) {
	if input.ChiroVisits < 0 || input.TherapyVisits < 0 {
		return nil, apperror.NewBadRequestError("Visit counts cannot be negative")
	}
	if input.ChiroVisits == 0 && input.TherapyVisits == 0 {
		return nil, apperror.NewBadRequestError("Plan needs at least one visit")
	}
	if input.PromoPercent < 0 || input.PromoPercent > 100 {
		return nil, apperror.NewBadRequestError("Promotion must be between 0 and 100")
	}

	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	practitioner, err := s.practitionerRepo.GetByID(ctx, input.PractitionerID)
	if err != nil {
		return nil, err
	}
	if practitioner == nil {
		return nil, apperror.NewNotFoundError("Practitioner")
	}

	quote := QuotePlan(input.ChiroVisits, input.ChiroUnitCost, input.TherapyVisits, input.TherapyUnitCost, input.PromoPercent)

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	plan := &entity.CarePlan{
		PatientID:       input.PatientID,
		PractitionerID:  input.PractitionerID,
		Date:            date,
		Diagnosis:       input.Diagnosis,
		ChiroVisits:     input.ChiroVisits,
		TherapyVisits:   input.TherapyVisits,
		Stage:           input.Stage,
		TotalInvestment: quote.Net,
		PromoPercent:    input.PromoPercent,
		Savings:         quote.Savings,
		AddonIDs:        input.AddonIDs,
		Notes:           input.Notes,
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetCarePlan retrieves a plan by ID
func (s *CarePlanService) GetCarePlan(ctx context.Context, id uint) (*entity.CarePlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Care plan")
	}
	return plan, nil
}

// GetActivePlan returns the patient's most recent plan, or nil
func (s *CarePlanService) GetActivePlan(ctx context.Context, patientID uint) (*entity.CarePlan, error) {
	return s.planRepo.GetActiveByPatient(ctx, patientID)
}

// ListPatientPlans lists a patient's plans, newest first
func (s *CarePlanService) ListPatientPlans(ctx context.Context, patientID uint) ([]entity.CarePlan, error) {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return s.planRepo.ListByPatient(ctx, patientID)
}

// DeleteCarePlan removes a plan
func (s *CarePlanService) DeleteCarePlan(ctx context.Context, id uint) error {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil {
		return apperror.NewNotFoundError("Care plan")
	}
	return s.planRepo.Delete(ctx, id)
}
