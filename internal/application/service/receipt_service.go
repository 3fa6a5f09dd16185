package service

import (
	"context"
	"fmt"
	"time"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/domain/ledger"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/apperror"
)

// balanceTolerance absorbs cent-level float drift when deciding whether a
// receipt is settled.
const balanceTolerance = 0.01

// ReceiptService handles point-of-sale receipt operations
type ReceiptService struct {
	receiptRepo      repository.ReceiptRepository
	detailRepo       repository.ReceiptDetailRepository
	paymentRepo      repository.ReceiptPaymentRepository
	productRepo      repository.ProductRepository
	patientRepo      repository.PatientRepository
	practitionerRepo repository.PractitionerRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	detailRepo repository.ReceiptDetailRepository,
	paymentRepo repository.ReceiptPaymentRepository,
	productRepo repository.ProductRepository,
	patientRepo repository.PatientRepository,
	practitionerRepo repository.PractitionerRepository,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:      receiptRepo,
		detailRepo:       detailRepo,
		paymentRepo:      paymentRepo,
		productRepo:      productRepo,
		patientRepo:      patientRepo,
		practitionerRepo: practitionerRepo,
	}
}

// ReceiptItemInput is one posted line of the point-of-sale form. Description
// and unit price are the values frozen at add-time; the line discount is
// already expressed as an amount.
type ReceiptItemInput struct {
	ProductID   int     `json:"id_prod"`
	Quantity    int     `json:"cantidad"`
	Description string  `json:"descripcion_prod"`
	UnitPrice   float64 `json:"costo_unitario_venta"`
	Discount    float64 `json:"descuento_linea"`
}

// CreateReceiptInput represents the submitted point-of-sale form
type CreateReceiptInput struct {
	PatientID        uint
	PractitionerID   uint
	Date             time.Time
	Items            []ReceiptItemInput
	CashPayment      float64
	CardPayment      float64
	TransferPayment  float64
	OtherPayment     float64
	OtherPaymentDesc *string
	Notes            *string
}

// CreateReceipt persists a submitted sale. Line arithmetic is replayed
// through the ledger rules rather than trusting the posted subtotals, stock
// is decremented for physical products only, and the initial payment split
// is recorded as the first entries of the payment history.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Receipt has no line items")
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

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uint, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = uint(item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uint]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Replay every posted line through the ledger rules. This re-runs the
	// add-time validation chain and recomputes each net subtotal, so a
	// tampered or stale payload cannot persist totals the rules would
	// never have produced.
	led := ledger.New(ledger.Editable, nil)
	stockDecrements := make(map[uint]int)

	for _, item := range input.Items {
		product, exists := productMap[uint(item.ProductID)]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %d", item.ProductID))
		}
		if !product.Sellable() {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Product %q is not sellable", product.Name))
		}

		description := item.Description
		if description == "" {
			description = product.Name
		}

		if _, err := led.AddItem(ledger.AddItemInput{
			ProductID:     item.ProductID,
			Description:   description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			DiscountMode:  ledger.DiscountAmount,
			DiscountValue: item.Discount,
		}); err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}

		if product.Kind.TracksStock() {
			stockDecrements[product.ID] += item.Quantity
		}
	}

	led.SetPayments(ledger.Payments{
		Cash:     input.CashPayment,
		Card:     input.CardPayment,
		Transfer: input.TransferPayment,
		Other:    input.OtherPayment,
	})
	totals := led.ComputeTotals()

	// Atomically decrement stock, race-condition safe
	applied := make([]uint, 0, len(stockDecrements))
	for id, amount := range stockDecrements {
		ok, err := s.productRepo.AtomicDecrementStock(ctx, id, amount)
		if err == nil && !ok {
			err = apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for %q", productMap[id].Name))
		}
		if err != nil {
			for _, rid := range applied {
				_ = s.productRepo.IncrementStock(ctx, rid, stockDecrements[rid])
			}
			return nil, err
		}
		applied = append(applied, id)
	}

	// If persisting the receipt fails after this point the decrements
	// must be compensated, or the sale that never happened eats stock.
	restoreStock := func() {
		for id, amount := range stockDecrements {
			_ = s.productRepo.IncrementStock(ctx, id, amount)
		}
	}

	balance := totals.Net - totals.Paid
	if balance < 0 {
		balance = 0
	}
	status := enum.ReceiptStatusPaid
	if balance > balanceTolerance {
		status = enum.ReceiptStatusPending
	} else {
		balance = 0
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	receipt := &entity.Receipt{
		PatientID:        input.PatientID,
		PractitionerID:   input.PractitionerID,
		Date:             date,
		GrossSubtotal:    totals.Gross,
		TotalDiscount:    totals.Discount,
		NetTotal:         totals.Net,
		CashPayment:      input.CashPayment,
		CardPayment:      input.CardPayment,
		TransferPayment:  input.TransferPayment,
		OtherPayment:     input.OtherPayment,
		OtherPaymentDesc: input.OtherPaymentDesc,
		Notes:            input.Notes,
		Status:           status,
		Balance:          balance,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		restoreStock()
		return nil, err
	}

	details := make([]entity.ReceiptDetail, 0, led.Len())
	for _, line := range led.Items() {
		detail := entity.ReceiptDetail{
			ReceiptID:   receipt.ID,
			ProductID:   uint(line.ProductID),
			Quantity:    line.Quantity,
			Description: line.Description,
			UnitPrice:   line.UnitPrice,
			Discount:    line.Discount,
			NetSubtotal: line.NetSubtotal,
		}
		if product, exists := productMap[uint(line.ProductID)]; exists {
			detail.InternalCost = product.InternalCost
		}
		details = append(details, detail)
	}
	if err := s.detailRepo.CreateBatch(ctx, details); err != nil {
		restoreStock()
		return nil, err
	}

	if err := s.paymentRepo.CreateBatch(ctx, initialPayments(receipt)); err != nil {
		restoreStock()
		return nil, err
	}

	return receipt, nil
}

// initialPayments expands the payment split of a new receipt into the
// entries that open its payment history.
func initialPayments(r *entity.Receipt) []entity.ReceiptPayment {
	var payments []entity.ReceiptPayment
	add := func(amount float64, method string) {
		if amount > 0 {
			payments = append(payments, entity.ReceiptPayment{
				ReceiptID: r.ID,
				Date:      r.Date,
				Amount:    amount,
				Method:    method,
			})
		}
	}

	add(r.CashPayment, "Efectivo")
	add(r.CardPayment, "Tarjeta")
	add(r.TransferPayment, "Transferencia")

	otherMethod := "Otro (Vales)"
	if r.OtherPaymentDesc != nil && *r.OtherPaymentDesc != "" {
		otherMethod = "Otro (" + *r.OtherPaymentDesc + ")"
	}
	add(r.OtherPayment, otherMethod)

	return payments
}

// GetReceipt loads a receipt with its line items and payment history
func (s *ReceiptService) GetReceipt(ctx context.Context, id uint) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts lists receipts with filtering and pagination
func (s *ReceiptService) ListReceipts(ctx context.Context, params *repository.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	return s.receiptRepo.List(ctx, params)
}

// ListPatientReceipts lists a patient's receipts, newest first
func (s *ReceiptService) ListPatientReceipts(ctx context.Context, patientID uint) ([]entity.Receipt, error) {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}
	return s.receiptRepo.ListByPatient(ctx, patientID)
}

// RegisterInstallmentInput represents an installment against a pending receipt
type RegisterInstallmentInput struct {
	ReceiptID uint
	Amount    float64
	Method    string
	Date      time.Time
	Notes     *string
}

// RegisterInstallment records a payment against a receipt's outstanding
// balance and settles the receipt when the balance reaches zero.
func (s *ReceiptService) RegisterInstallment(ctx context.Context, input *RegisterInstallmentInput) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, input.ReceiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	if receipt.Status == enum.ReceiptStatusPaid {
		return nil, apperror.NewBadRequestError("Receipt is already settled")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Installment must be positive")
	}
	if input.Amount > receipt.Balance+balanceTolerance {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Installment %.2f exceeds outstanding balance %.2f", input.Amount, receipt.Balance))
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	method := input.Method
	if method == "" {
		method = "Efectivo"
	}

	payment := &entity.ReceiptPayment{
		ReceiptID: receipt.ID,
		Date:      date,
		Amount:    input.Amount,
		Method:    method,
		Notes:     input.Notes,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	receipt.Balance -= input.Amount
	if receipt.Balance <= balanceTolerance {
		receipt.Balance = 0
		receipt.Status = enum.ReceiptStatusPaid
	}
	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}

// PatientDebt summarizes what a patient still owes
type PatientDebt struct {
	PatientID     uint            `json:"id_px"`
	Total         float64         `json:"saldo_total"`
	OldestPending *entity.Receipt `json:"recibo_mas_antiguo,omitempty"`
}

// GetPatientDebt totals the patient's pending balances and surfaces the
// oldest receipt still open, which is the one installments should hit first.
func (s *ReceiptService) GetPatientDebt(ctx context.Context, patientID uint) (*PatientDebt, error) {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	total, err := s.receiptRepo.SumPendingBalance(ctx, patientID)
	if err != nil {
		return nil, err
	}

	oldest, err := s.receiptRepo.GetOldestPending(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return &PatientDebt{
		PatientID:     patientID,
		Total:         total,
		OldestPending: oldest,
	}, nil
}
