package service

import (
	"context"
	"fmt"
	"log"

	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/pkg/apperror"
	"github.com/quirodesk/clinica-api/pkg/dates"
	"github.com/quirodesk/clinica-api/pkg/printer"
	"github.com/quirodesk/clinica-api/pkg/utils"
)

// PrinterService formats clinic receipts for the thermal printer at the
// front desk.
type PrinterService struct {
	printer     printer.Printer
	receiptRepo repository.ReceiptRepository
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, receiptRepo repository.ReceiptRepository, printerType string) *PrinterService {
	return &PrinterService{
		printer:     p,
		receiptRepo: receiptRepo,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(32)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("PRUEBA DE IMPRESORA").
		SetBold(false).
		LineFeed().
		Text("0123456789 ABCDEF").
		FeedLines(3).
		PartialCut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		return fmt.Errorf("test print failed: %w", err)
	}
	return nil
}

// PrintReceipt fetches a receipt (with details and payments) and prints it.
func (s *PrinterService) PrintReceipt(ctx context.Context, receiptID uint) error {
	receipt, err := s.receiptRepo.GetWithDetails(ctx, receiptID)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt")
	}

	data := FormatTicket(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (receipt %d): %v", receiptID, err)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// FormatTicket converts a receipt into ESC/POS bytes for 58mm paper.
func FormatTicket(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	clinicName := "Clinica"
	var clinicAddress, clinicPhone string
	if r.Practitioner != nil && r.Practitioner.Clinic != nil {
		c := r.Practitioner.Clinic
		clinicName = c.Name
		if c.Address != nil {
			clinicAddress = *c.Address
		}
		if c.Phone != nil {
			clinicPhone = *c.Phone
		}
	}

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(clinicName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if clinicAddress != "" {
		doc.Text(clinicAddress)
	}
	if clinicPhone != "" {
		doc.TextF("Tel: %s", clinicPhone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Folio:", utils.ReceiptFolio(r.ID)).
		KeyValue("Fecha:", dates.FormatFrontend(r.Date))

	if r.Patient != nil {
		doc.KeyValue("Paciente:", r.Patient.FullName())
	}
	if r.Practitioner != nil {
		doc.KeyValue("Atendio:", r.Practitioner.Name)
	}

	doc.Separator('-')

	for _, d := range r.Details {
		doc.ItemLine(d.Quantity, d.Description, fmt.Sprintf("%.2f", d.NetSubtotal))
		if d.Quantity > 1 {
			doc.TextF("  @ %.2f c/u", d.UnitPrice)
		}
		if d.Discount > 0 {
			doc.TextF("  desc. -%.2f", d.Discount)
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.GrossSubtotal))
	if r.TotalDiscount > 0 {
		doc.KeyValue("Descuento:", fmt.Sprintf("-%.2f", r.TotalDiscount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.NetTotal)).
		SetBold(false)

	if paid := r.InitialPaid(); paid > 0 {
		doc.KeyValue("Pagado:", fmt.Sprintf("%.2f", paid))
		if change := paid - r.NetTotal; change > 0 {
			doc.KeyValue("Cambio:", fmt.Sprintf("%.2f", change))
		}
	}
	if r.Balance > 0 {
		doc.SetBold(true).
			KeyValue("SALDO:", fmt.Sprintf("%.2f", r.Balance)).
			SetBold(false)
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Gracias por su visita").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
