package repository

import (
	"context"
	"time"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/pkg/pagination"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uint) (*entity.Receipt, error)
	// GetWithDetails loads the receipt together with its line items and payment history.
	GetWithDetails(ctx context.Context, id uint) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
	ListByPatient(ctx context.Context, patientID uint) ([]entity.Receipt, error)
	// GetOldestPending returns the patient's oldest receipt still carrying a balance, or nil.
	GetOldestPending(ctx context.Context, patientID uint) (*entity.Receipt, error)
	// SumPendingBalance totals saldo_pendiente across the patient's pending receipts.
	SumPendingBalance(ctx context.Context, patientID uint) (float64, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	Pagination     *pagination.PaginationParams
	PatientID      *uint
	PractitionerID *uint
	Status         *enum.ReceiptStatus
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
}

// ReceiptDetailRepository defines the interface for receipt line item operations
type ReceiptDetailRepository interface {
	CreateBatch(ctx context.Context, details []entity.ReceiptDetail) error
	GetByReceiptID(ctx context.Context, receiptID uint) ([]entity.ReceiptDetail, error)
}

// ReceiptPaymentRepository defines the interface for installment payment operations
type ReceiptPaymentRepository interface {
	Create(ctx context.Context, payment *entity.ReceiptPayment) error
	CreateBatch(ctx context.Context, payments []entity.ReceiptPayment) error
	GetByReceiptID(ctx context.Context, receiptID uint) ([]entity.ReceiptPayment, error)
}
