package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/pkg/apperror"
)

func TestQuotePlan(t *testing.T) {
	tests := []struct {
		name          string
		chiroVisits   int
		chiroCost     float64
		therapyVisits int
		therapyCost   float64
		promo         float64
		wantGross     float64
		wantSavings   float64
		wantNet       float64
	}{
		{
			name:        "chiro only no promo",
			chiroVisits: 10, chiroCost: 500,
			wantGross: 5000, wantSavings: 0, wantNet: 5000,
		},
		{
			name:        "mixed with promo",
			chiroVisits: 12, chiroCost: 500,
			therapyVisits: 6, therapyCost: 250,
			promo:     15,
			wantGross: 7500, wantSavings: 1125, wantNet: 6375,
		},
		{
			name:      "full promo",
			promo:     100,
			chiroVisits: 4, chiroCost: 450,
			wantGross: 1800, wantSavings: 1800, wantNet: 0,
		},
		{
			name:        "cent rounding",
			chiroVisits: 3, chiroCost: 333.33,
			promo:     10,
			wantGross: 999.99, wantSavings: 100, wantNet: 899.99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := QuotePlan(tt.chiroVisits, tt.chiroCost, tt.therapyVisits, tt.therapyCost, tt.promo)
			assert.InDelta(t, tt.wantGross, quote.Gross, 0.001)
			assert.InDelta(t, tt.wantSavings, quote.Savings, 0.001)
			assert.InDelta(t, tt.wantNet, quote.Net, 0.001)
		})
	}
}

func newCarePlanFixture() (*CarePlanService, *fakeCarePlanRepo) {
	planRepo := newFakeCarePlanRepo()
	patientRepo := newFakePatientRepo(&entity.Patient{ID: 1, FirstName: "Ana", LastNamePaternal: "Lopez"})
	practitionerRepo := newFakePractitionerRepo(&entity.Practitioner{ID: 2, Name: "Dr. Ruiz"})
	return NewCarePlanService(planRepo, patientRepo, practitionerRepo), planRepo
}

func TestCreateCarePlanStoresQuotedFigures(t *testing.T) {
	svc, _ := newCarePlanFixture()

	plan, err := svc.CreateCarePlan(context.Background(), &CreateCarePlanInput{
		PatientID:       1,
		PractitionerID:  2,
		Date:            time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		ChiroVisits:     12,
		ChiroUnitCost:   500,
		TherapyVisits:   6,
		TherapyUnitCost: 250,
		PromoPercent:    15,
	})
	require.NoError(t, err)

	assert.Equal(t, 12, plan.ChiroVisits)
	assert.Equal(t, 6, plan.TherapyVisits)
	assert.InDelta(t, 6375.0, plan.TotalInvestment, 0.001)
	assert.InDelta(t, 1125.0, plan.Savings, 0.001)
	assert.Equal(t, 15.0, plan.PromoPercent)
}

func TestCreateCarePlanRejectsEmptyPlan(t *testing.T) {
	svc, _ := newCarePlanFixture()

	_, err := svc.CreateCarePlan(context.Background(), &CreateCarePlanInput{
		PatientID:      1,
		PractitionerID: 2,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateCarePlanRejectsPromoOutOfRange(t *testing.T) {
	svc, _ := newCarePlanFixture()

	_, err := svc.CreateCarePlan(context.Background(), &CreateCarePlanInput{
		PatientID:      1,
		PractitionerID: 2,
		ChiroVisits:    5,
		ChiroUnitCost:  500,
		PromoPercent:   120,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateCarePlanUnknownPatient(t *testing.T) {
	svc, _ := newCarePlanFixture()

	_, err := svc.CreateCarePlan(context.Background(), &CreateCarePlanInput{
		PatientID:      99,
		PractitionerID: 2,
		ChiroVisits:    5,
		ChiroUnitCost:  500,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
