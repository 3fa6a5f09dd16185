package service

import (
	"context"
	"strings"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/pagination"
)

// In-memory repository fakes shared across the service tests.

type fakePatientRepo struct {
	patients map[uint]*entity.Patient
	recent   []entity.Patient
}

func newFakePatientRepo(patients ...*entity.Patient) *fakePatientRepo {
	repo := &fakePatientRepo{patients: make(map[uint]*entity.Patient)}
	for _, p := range patients {
		repo.patients[p.ID] = p
	}
	return repo
}

func (r *fakePatientRepo) Create(_ context.Context, patient *entity.Patient) error {
	if patient.ID == 0 {
		patient.ID = uint(len(r.patients) + 1)
	}
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id uint) (*entity.Patient, error) {
	return r.patients[id], nil
}

func (r *fakePatientRepo) Update(_ context.Context, patient *entity.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uint) error {
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Patient, int64, error) {
	var out []entity.Patient
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePatientRepo) Search(_ context.Context, term string, limit int) ([]entity.Patient, error) {
	var out []entity.Patient
	for _, p := range r.patients {
		if strings.Contains(strings.ToLower(p.FullName()), strings.ToLower(term)) {
			out = append(out, *p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakePatientRepo) GetRecent(_ context.Context, limit int) ([]entity.Patient, error) {
	if limit > len(r.recent) {
		limit = len(r.recent)
	}
	return r.recent[:limit], nil
}

type fakePractitionerRepo struct {
	practitioners map[uint]*entity.Practitioner
}

func newFakePractitionerRepo(practitioners ...*entity.Practitioner) *fakePractitionerRepo {
	repo := &fakePractitionerRepo{practitioners: make(map[uint]*entity.Practitioner)}
	for _, p := range practitioners {
		repo.practitioners[p.ID] = p
	}
	return repo
}

func (r *fakePractitionerRepo) Create(_ context.Context, practitioner *entity.Practitioner) error {
	r.practitioners[practitioner.ID] = practitioner
	return nil
}

func (r *fakePractitionerRepo) GetByID(_ context.Context, id uint) (*entity.Practitioner, error) {
	return r.practitioners[id], nil
}

func (r *fakePractitionerRepo) Update(_ context.Context, practitioner *entity.Practitioner) error {
	r.practitioners[practitioner.ID] = practitioner
	return nil
}

func (r *fakePractitionerRepo) List(_ context.Context) ([]entity.Practitioner, error) {
	var out []entity.Practitioner
	for _, p := range r.practitioners {
		out = append(out, *p)
	}
	return out, nil
}

type fakeProductRepo struct {
	products   map[uint]*entity.Product
	decrements map[uint]int
	increments map[uint]int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{
		products:   make(map[uint]*entity.Product),
		decrements: make(map[uint]int),
		increments: make(map[uint]int),
	}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == 0 {
		product.ID = uint(len(r.products) + 1)
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uint) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uint) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListSellable(_ context.Context, exclude enum.ProductKind) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.Active && p.Kind != exclude {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AtomicDecrementStock(_ context.Context, id uint, amount int) (bool, error) {
	product, ok := r.products[id]
	if !ok || product.Stock < amount {
		return false, nil
	}
	product.Stock -= amount
	r.decrements[id] += amount
	return true, nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id uint, amount int) error {
	if product, ok := r.products[id]; ok {
		product.Stock += amount
	}
	r.increments[id] += amount
	return nil
}

type fakeReceiptRepo struct {
	receipts map[uint]*entity.Receipt
	nextID   uint
}

func newFakeReceiptRepo(receipts ...*entity.Receipt) *fakeReceiptRepo {
	repo := &fakeReceiptRepo{receipts: make(map[uint]*entity.Receipt), nextID: 1}
	for _, r := range receipts {
		repo.receipts[r.ID] = r
		if r.ID >= repo.nextID {
			repo.nextID = r.ID + 1
		}
	}
	return repo
}

func (r *fakeReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	receipt.ID = r.nextID
	r.nextID++
	r.receipts[receipt.ID] = receipt
	return nil
}

func (r *fakeReceiptRepo) GetByID(_ context.Context, id uint) (*entity.Receipt, error) {
	return r.receipts[id], nil
}

func (r *fakeReceiptRepo) GetWithDetails(_ context.Context, id uint) (*entity.Receipt, error) {
	return r.receipts[id], nil
}

func (r *fakeReceiptRepo) Update(_ context.Context, receipt *entity.Receipt) error {
	r.receipts[receipt.ID] = receipt
	return nil
}

func (r *fakeReceiptRepo) List(_ context.Context, _ *repository.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var out []entity.Receipt
	for _, rec := range r.receipts {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReceiptRepo) ListByPatient(_ context.Context, patientID uint) ([]entity.Receipt, error) {
	var out []entity.Receipt
	for _, rec := range r.receipts {
		if rec.PatientID == patientID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeReceiptRepo) GetOldestPending(_ context.Context, patientID uint) (*entity.Receipt, error) {
	var oldest *entity.Receipt
	for _, rec := range r.receipts {
		if rec.PatientID != patientID || rec.Status != enum.ReceiptStatusPending {
			continue
		}
		if oldest == nil || rec.Date.Before(oldest.Date) {
			oldest = rec
		}
	}
	return oldest, nil
}

func (r *fakeReceiptRepo) SumPendingBalance(_ context.Context, patientID uint) (float64, error) {
	var total float64
	for _, rec := range r.receipts {
		if rec.PatientID == patientID && rec.Status == enum.ReceiptStatusPending {
			total += rec.Balance
		}
	}
	return total, nil
}

type fakeReceiptDetailRepo struct {
	details    []entity.ReceiptDetail
	failCreate error
}

func (r *fakeReceiptDetailRepo) CreateBatch(_ context.Context, details []entity.ReceiptDetail) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.details = append(r.details, details...)
	return nil
}

func (r *fakeReceiptDetailRepo) GetByReceiptID(_ context.Context, receiptID uint) ([]entity.ReceiptDetail, error) {
	var out []entity.ReceiptDetail
	for _, d := range r.details {
		if d.ReceiptID == receiptID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeReceiptPaymentRepo struct {
	payments []entity.ReceiptPayment
}

func (r *fakeReceiptPaymentRepo) Create(_ context.Context, payment *entity.ReceiptPayment) error {
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakeReceiptPaymentRepo) CreateBatch(_ context.Context, payments []entity.ReceiptPayment) error {
	r.payments = append(r.payments, payments...)
	return nil
}

func (r *fakeReceiptPaymentRepo) GetByReceiptID(_ context.Context, receiptID uint) ([]entity.ReceiptPayment, error) {
	var out []entity.ReceiptPayment
	for _, p := range r.payments {
		if p.ReceiptID == receiptID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCarePlanRepo struct {
	plans  map[uint]*entity.CarePlan
	nextID uint
}

func newFakeCarePlanRepo() *fakeCarePlanRepo {
	return &fakeCarePlanRepo{plans: make(map[uint]*entity.CarePlan), nextID: 1}
}

func (r *fakeCarePlanRepo) Create(_ context.Context, plan *entity.CarePlan) error {
	plan.ID = r.nextID
	r.nextID++
	r.plans[plan.ID] = plan
	return nil
}

func (r *fakeCarePlanRepo) GetByID(_ context.Context, id uint) (*entity.CarePlan, error) {
	return r.plans[id], nil
}

func (r *fakeCarePlanRepo) GetActiveByPatient(_ context.Context, patientID uint) (*entity.CarePlan, error) {
	var latest *entity.CarePlan
	for _, p := range r.plans {
		if p.PatientID != patientID {
			continue
		}
		if latest == nil || p.Date.After(latest.Date) {
			latest = p
		}
	}
	return latest, nil
}

func (r *fakeCarePlanRepo) ListByPatient(_ context.Context, patientID uint) ([]entity.CarePlan, error) {
	var out []entity.CarePlan
	for _, p := range r.plans {
		if p.PatientID == patientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeCarePlanRepo) Update(_ context.Context, plan *entity.CarePlan) error {
	r.plans[plan.ID] = plan
	return nil
}

func (r *fakeCarePlanRepo) Delete(_ context.Context, id uint) error {
	delete(r.plans, id)
	return nil
}
