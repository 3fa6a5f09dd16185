package repository

import (
	"context"
	"errors"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	domainRepo "github.com/quirodesk/clinica-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uint) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id_recibo = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetWithDetails(ctx context.Context, id uint) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Practitioner").
		Preload("Practitioner.Clinic").
		Preload("Details").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha ASC, id_pago ASC")
		}).
		First(&receipt, "id_recibo = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{})

	if params.PatientID != nil {
		query = query.Where("id_px = ?", *params.PatientID)
	}
	if params.PractitionerID != nil {
		query = query.Where("id_dr = ?", *params.PractitionerID)
	}
	if params.Status != nil {
		query = query.Where("estado = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("fecha >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("fecha <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "fecha"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Preload("Patient").
		Find(&receipts).Error

	return receipts, total, err
}

func (r *receiptRepository) ListByPatient(ctx context.Context, patientID uint) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Where("id_px = ?", patientID).
		Order("fecha DESC, id_recibo DESC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) GetOldestPending(ctx context.Context, patientID uint) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Where("id_px = ? AND estado = ?", patientID, enum.ReceiptStatusPending).
		Order("fecha ASC, id_recibo ASC").
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) SumPendingBalance(ctx context.Context, patientID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("id_px = ? AND estado = ?", patientID, enum.ReceiptStatusPending).
		Select("COALESCE(SUM(saldo_pendiente), 0)").
		Scan(&total).Error
	return total, err
}

type receiptDetailRepository struct {
	db *gorm.DB
}

// NewReceiptDetailRepository creates a new receipt detail repository
func NewReceiptDetailRepository(db *gorm.DB) domainRepo.ReceiptDetailRepository {
	return &receiptDetailRepository{db: db}
}

func (r *receiptDetailRepository) CreateBatch(ctx context.Context, details []entity.ReceiptDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *receiptDetailRepository) GetByReceiptID(ctx context.Context, receiptID uint) ([]entity.ReceiptDetail, error) {
	var details []entity.ReceiptDetail
	err := r.db.WithContext(ctx).
		Where("id_recibo = ?", receiptID).
		Order("id_detalle ASC").
		Find(&details).Error
	return details, err
}

type receiptPaymentRepository struct {
	db *gorm.DB
}

// NewReceiptPaymentRepository creates a new receipt payment repository
func NewReceiptPaymentRepository(db *gorm.DB) domainRepo.ReceiptPaymentRepository {
	return &receiptPaymentRepository{db: db}
}

func (r *receiptPaymentRepository) Create(ctx context.Context, payment *entity.ReceiptPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *receiptPaymentRepository) CreateBatch(ctx context.Context, payments []entity.ReceiptPayment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&payments).Error
}

func (r *receiptPaymentRepository) GetByReceiptID(ctx context.Context, receiptID uint) ([]entity.ReceiptPayment, error) {
	var payments []entity.ReceiptPayment
	err := r.db.WithContext(ctx).
		Where("id_recibo = ?", receiptID).
		Order("fecha ASC, id_pago ASC").
		Find(&payments).Error
	return payments, err
}
