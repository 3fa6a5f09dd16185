package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirodesk/clinica-api/internal/application/service"
	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/pagination"
	"github.com/quirodesk/clinica-api/pkg/report"
)

type stubPatientRepo struct{ patient *entity.Patient }

func (r *stubPatientRepo) Create(context.Context, *entity.Patient) error { return nil }
func (r *stubPatientRepo) GetByID(_ context.Context, id uint) (*entity.Patient, error) {
	if r.patient != nil && r.patient.ID == id {
		return r.patient, nil
	}
	return nil, nil
}
func (r *stubPatientRepo) Update(context.Context, *entity.Patient) error { return nil }
func (r *stubPatientRepo) Delete(context.Context, uint) error            { return nil }
func (r *stubPatientRepo) List(context.Context, *pagination.PaginationParams, string) ([]entity.Patient, int64, error) {
	return nil, 0, nil
}
func (r *stubPatientRepo) Search(context.Context, string, int) ([]entity.Patient, error) {
	return nil, nil
}
func (r *stubPatientRepo) GetRecent(context.Context, int) ([]entity.Patient, error) {
	return nil, nil
}

type stubPractitionerRepo struct{ practitioner *entity.Practitioner }

func (r *stubPractitionerRepo) Create(context.Context, *entity.Practitioner) error { return nil }
func (r *stubPractitionerRepo) GetByID(_ context.Context, id uint) (*entity.Practitioner, error) {
	if r.practitioner != nil && r.practitioner.ID == id {
		return r.practitioner, nil
	}
	return nil, nil
}
func (r *stubPractitionerRepo) Update(context.Context, *entity.Practitioner) error { return nil }
func (r *stubPractitionerRepo) List(context.Context) ([]entity.Practitioner, error) {
	return nil, nil
}

type stubProductRepo struct{ products map[uint]*entity.Product }

func (r *stubProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (r *stubProductRepo) GetByID(_ context.Context, id uint) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *stubProductRepo) GetByIDs(_ context.Context, ids []uint) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}
func (r *stubProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (r *stubProductRepo) Delete(context.Context, uint) error            { return nil }
func (r *stubProductRepo) List(context.Context, *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}
func (r *stubProductRepo) ListSellable(context.Context, enum.ProductKind) ([]entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) AtomicDecrementStock(_ context.Context, id uint, amount int) (bool, error) {
	p, ok := r.products[id]
	if !ok || p.Stock < amount {
		return false, nil
	}
	p.Stock -= amount
	return true, nil
}
func (r *stubProductRepo) IncrementStock(_ context.Context, id uint, amount int) error {
	if p, ok := r.products[id]; ok {
		p.Stock += amount
	}
	return nil
}

type stubReceiptRepo struct {
	created *entity.Receipt
}

func (r *stubReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	receipt.ID = 41
	r.created = receipt
	return nil
}
func (r *stubReceiptRepo) GetByID(context.Context, uint) (*entity.Receipt, error) { return nil, nil }
func (r *stubReceiptRepo) GetWithDetails(context.Context, uint) (*entity.Receipt, error) {
	return nil, nil
}
func (r *stubReceiptRepo) Update(context.Context, *entity.Receipt) error { return nil }
func (r *stubReceiptRepo) List(context.Context, *repository.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	return nil, 0, nil
}
func (r *stubReceiptRepo) ListByPatient(context.Context, uint) ([]entity.Receipt, error) {
	return nil, nil
}
func (r *stubReceiptRepo) GetOldestPending(context.Context, uint) (*entity.Receipt, error) {
	return nil, nil
}
func (r *stubReceiptRepo) SumPendingBalance(context.Context, uint) (float64, error) { return 0, nil }

type stubDetailRepo struct{ details []entity.ReceiptDetail }

func (r *stubDetailRepo) CreateBatch(_ context.Context, details []entity.ReceiptDetail) error {
	r.details = append(r.details, details...)
	return nil
}
func (r *stubDetailRepo) GetByReceiptID(context.Context, uint) ([]entity.ReceiptDetail, error) {
	return nil, nil
}

type stubPaymentRepo struct{ payments []entity.ReceiptPayment }

func (r *stubPaymentRepo) Create(_ context.Context, payment *entity.ReceiptPayment) error {
	r.payments = append(r.payments, *payment)
	return nil
}
func (r *stubPaymentRepo) CreateBatch(_ context.Context, payments []entity.ReceiptPayment) error {
	r.payments = append(r.payments, payments...)
	return nil
}
func (r *stubPaymentRepo) GetByReceiptID(context.Context, uint) ([]entity.ReceiptPayment, error) {
	return nil, nil
}

func newSubmitRouter(t *testing.T) (*gin.Engine, *stubReceiptRepo, *stubProductRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	receiptRepo := &stubReceiptRepo{}
	productRepo := &stubProductRepo{products: map[uint]*entity.Product{
		10: {ID: 10, Name: "Consulta", SalePrice: 500, Kind: enum.ProductKindService, Active: true},
		20: {ID: 20, Name: "Faja lumbar", SalePrice: 300, Kind: enum.ProductKindPhysical, Active: true, Stock: 5},
	}}

	svc := service.NewReceiptService(
		receiptRepo,
		&stubDetailRepo{},
		&stubPaymentRepo{},
		productRepo,
		&stubPatientRepo{patient: &entity.Patient{ID: 1, FirstName: "Ana", LastNamePaternal: "Lopez"}},
		&stubPractitionerRepo{practitioner: &entity.Practitioner{ID: 2, Name: "Dr. Ruiz"}},
	)
	docSvc := service.NewDocumentService(report.NewClient("http://unused", 0), receiptRepo)
	h := NewReceiptHandler(svc, docSvc)

	router := gin.New()
	router.POST("/api/v1/recibos", h.Submit)
	return router, receiptRepo, productRepo
}

func postForm(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recibos", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitReturnsFlatContractResponse(t *testing.T) {
	router, receiptRepo, _ := newSubmitRouter(t)

	form := url.Values{}
	form.Set("id_px", "1")
	form.Set("id_dr", "2")
	form.Set("fecha", "2026-08-31")
	form.Set("recibo_detalles_json", `[{"id_prod":10,"cantidad":2,"descripcion_prod":"Consulta","costo_unitario_venta":500,"descuento_linea":100}]`)
	form.Set("pago_efectivo", "900")

	w := postForm(router, form)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Recibo guardado correctamente", body["message"])
	assert.Equal(t, "/api/v1/recibos/41/pdf", body["pdf_url"])
	assert.Equal(t, "/api/v1/recibos/41", body["view_receipt_url"])

	require.NotNil(t, receiptRepo.created)
	assert.Equal(t, 900.0, receiptRepo.created.NetTotal)
	assert.Equal(t, enum.ReceiptStatusPaid, receiptRepo.created.Status)
}

func TestSubmitAcceptsLegacyItemDescriptionField(t *testing.T) {
	router, receiptRepo, _ := newSubmitRouter(t)

	form := url.Values{}
	form.Set("id_px", "1")
	form.Set("id_dr", "2")
	form.Set("recibo_detalles_json", `[{"id_prod":10,"cantidad":1,"descripcion_item":"Consulta inicial","costo_unitario_venta":500}]`)
	form.Set("pago_efectivo", "500")

	w := postForm(router, form)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, receiptRepo.created)
}

func TestSubmitInvalidPatientID(t *testing.T) {
	router, _, _ := newSubmitRouter(t)

	form := url.Values{}
	form.Set("id_px", "abc")
	form.Set("id_dr", "2")
	form.Set("recibo_detalles_json", `[]`)

	w := postForm(router, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestSubmitUnreadableDetailPayload(t *testing.T) {
	router, _, _ := newSubmitRouter(t)

	form := url.Values{}
	form.Set("id_px", "1")
	form.Set("id_dr", "2")
	form.Set("recibo_detalles_json", `{not json`)

	w := postForm(router, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitEmptyLines(t *testing.T) {
	router, _, _ := newSubmitRouter(t)

	form := url.Values{}
	form.Set("id_px", "1")
	form.Set("id_dr", "2")
	form.Set("recibo_detalles_json", `[]`)

	w := postForm(router, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitClampsGarbagePaymentsToZero(t *testing.T) {
	router, receiptRepo, _ := newSubmitRouter(t)

	form := url.Values{}
	form.Set("id_px", "1")
	form.Set("id_dr", "2")
	form.Set("recibo_detalles_json", `[{"id_prod":10,"cantidad":1,"descripcion_prod":"Consulta","costo_unitario_venta":500}]`)
	form.Set("pago_efectivo", "-50")
	form.Set("pago_tarjeta", "garbage")

	w := postForm(router, form)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, receiptRepo.created)
	assert.Equal(t, enum.ReceiptStatusPending, receiptRepo.created.Status)
	assert.Equal(t, 500.0, receiptRepo.created.Balance)
	assert.Zero(t, receiptRepo.created.CashPayment)
	assert.Zero(t, receiptRepo.created.CardPayment)
}

func TestSubmitInsufficientStock(t *testing.T) {
	router, receiptRepo, _ := newSubmitRouter(t)

	form := url.Values{}
	form.Set("id_px", "1")
	form.Set("id_dr", "2")
	form.Set("recibo_detalles_json", `[{"id_prod":20,"cantidad":9,"descripcion_prod":"Faja lumbar","costo_unitario_venta":300}]`)
	form.Set("pago_efectivo", "2700")

	w := postForm(router, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, receiptRepo.created)
}
