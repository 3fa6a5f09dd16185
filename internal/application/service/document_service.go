package service

import (
	"context"
	"fmt"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/apperror"
	"github.com/quirodesk/clinica-api/pkg/dates"
	"github.com/quirodesk/clinica-api/pkg/report"
	"github.com/quirodesk/clinica-api/pkg/utils"
)

// DocumentService renders receipt PDFs through Gotenberg.
type DocumentService struct {
	gotenberg   *report.Client
	receiptRepo repository.ReceiptRepository
}

// NewDocumentService creates a new document service.
func NewDocumentService(gotenberg *report.Client, receiptRepo repository.ReceiptRepository) *DocumentService {
	return &DocumentService{
		gotenberg:   gotenberg,
		receiptRepo: receiptRepo,
	}
}

// ReceiptPDF renders the receipt as a PDF document.
func (s *DocumentService) ReceiptPDF(ctx context.Context, receiptID uint) ([]byte, error) {
	receipt, err := s.receiptRepo.GetWithDetails(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	html, err := report.RenderReceiptHTML(receiptData(receipt))
	if err != nil {
		return nil, err
	}

	return s.gotenberg.RenderHTML(ctx, html)
}

func receiptData(r *entity.Receipt) *report.ReceiptData {
	data := &report.ReceiptData{
		ClinicName:    "Clínica",
		Folio:         utils.ReceiptFolio(r.ID),
		Date:          dates.FormatFrontend(r.Date),
		GrossSubtotal: money(r.GrossSubtotal),
		TotalDiscount: money(r.TotalDiscount),
		NetTotal:      money(r.NetTotal),
		Paid:          money(r.InitialPaid()),
		Balance:       money(r.Balance),
		Status:        string(r.Status),
	}

	if r.Status == "" {
		data.Status = string(enum.ReceiptStatusPending)
	}
	if change := r.InitialPaid() - r.NetTotal; change > 0 {
		data.Change = money(change)
	}
	if r.Notes != nil {
		data.Notes = *r.Notes
	}
	if r.Patient != nil {
		data.PatientName = r.Patient.FullName()
	}
	if r.Practitioner != nil {
		data.Practitioner = r.Practitioner.Name
		if c := r.Practitioner.Clinic; c != nil {
			data.ClinicName = c.Name
			if c.Address != nil {
				data.ClinicAddress = *c.Address
			}
			if c.Phone != nil {
				data.ClinicPhone = *c.Phone
			}
		}
	}

	for _, d := range r.Details {
		data.Items = append(data.Items, report.ReceiptItem{
			Quantity:    d.Quantity,
			Description: d.Description,
			UnitPrice:   money(d.UnitPrice),
			Discount:    money(d.Discount),
			NetSubtotal: money(d.NetSubtotal),
		})
	}

	for _, p := range r.Payments {
		data.Payments = append(data.Payments, report.ReceiptPaymentRow{
			Date:   dates.FormatFrontend(p.Date),
			Method: p.Method,
			Amount: money(p.Amount),
		})
	}

	return data
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
