package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
)

func newPatientFixture(patients ...*entity.Patient) (*PatientService, *fakePatientRepo) {
	patientRepo := newFakePatientRepo(patients...)
	practitionerRepo := newFakePractitionerRepo(&entity.Practitioner{ID: 2, Name: "Dr. Ruiz"})
	return NewPatientService(patientRepo, practitionerRepo), patientRepo
}

func TestSearchPatientsEmptyTermReturnsNothing(t *testing.T) {
	svc, _ := newPatientFixture(&entity.Patient{ID: 1, FirstName: "Ana", LastNamePaternal: "Lopez"})

	summaries, err := svc.SearchPatients(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSearchPatientsSummarizesHits(t *testing.T) {
	birth := time.Now().AddDate(-30, 0, -1)
	mobile := "5512345678"
	materno := "Diaz"
	svc, _ := newPatientFixture(
		&entity.Patient{ID: 1, FirstName: "Ana", LastNamePaternal: "Lopez", LastNameMaternal: &materno, BirthDate: &birth, MobilePhone: &mobile},
		&entity.Patient{ID: 2, FirstName: "Bruno", LastNamePaternal: "Campos"},
	)

	summaries, err := svc.SearchPatients(context.Background(), "lopez")
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	hit := summaries[0]
	assert.Equal(t, uint(1), hit.ID)
	assert.Equal(t, "Ana Lopez Diaz", hit.FullName)
	assert.Equal(t, 30, hit.Age)
	assert.Equal(t, mobile, hit.Mobile)
}

func TestSearchPatientsNoBirthDateAgeSentinel(t *testing.T) {
	svc, _ := newPatientFixture(&entity.Patient{ID: 1, FirstName: "Ana", LastNamePaternal: "Lopez"})

	summaries, err := svc.SearchPatients(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, -1, summaries[0].Age)
}

func TestGetRecentPatientsDefaultsLimit(t *testing.T) {
	svc, patientRepo := newPatientFixture()
	for i := 1; i <= 15; i++ {
		patientRepo.recent = append(patientRepo.recent, entity.Patient{ID: uint(i), FirstName: "P", LastNamePaternal: "N"})
	}

	summaries, err := svc.GetRecentPatients(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, summaries, 10)
}
