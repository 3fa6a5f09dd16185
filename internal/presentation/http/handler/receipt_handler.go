package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quirodesk/clinica-api/internal/application/service"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/domain/repository"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/request"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/response"
	"github.com/quirodesk/clinica-api/pkg/apperror"
	"github.com/quirodesk/clinica-api/pkg/dates"
	"github.com/quirodesk/clinica-api/pkg/pagination"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService  *service.ReceiptService
	documentService *service.DocumentService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, documentService *service.DocumentService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService:  receiptService,
		documentService: documentService,
	}
}

// submitLine mirrors one entry of the recibo_detalles_json payload. Older
// clients send the description as descripcion_item; both spellings are
// accepted here.
type submitLine struct {
	ProductID      int     `json:"id_prod"`
	Quantity       int     `json:"cantidad"`
	Description    string  `json:"descripcion_prod"`
	DescriptionAlt string  `json:"descripcion_item"`
	UnitPrice      float64 `json:"costo_unitario_venta"`
	Discount       float64 `json:"descuento_linea"`
}

// Submit handles the point-of-sale form post. This endpoint keeps the
// form-encoded request and flat JSON response the clinic's front end has
// always used; it does not wrap the reply in the APIResponse envelope.
func (h *ReceiptHandler) Submit(c *gin.Context) {
	fail := func(status int, message string) {
		c.JSON(status, gin.H{
			"success": false,
			"message": message,
		})
	}

	patientID, err := strconv.ParseUint(c.PostForm("id_px"), 10, 32)
	if err != nil || patientID == 0 {
		fail(http.StatusBadRequest, "Paciente inválido")
		return
	}
	practitionerID, err := strconv.ParseUint(c.PostForm("id_dr"), 10, 32)
	if err != nil || practitionerID == 0 {
		fail(http.StatusBadRequest, "Doctor inválido")
		return
	}

	var lines []submitLine
	if err := json.Unmarshal([]byte(c.PostForm("recibo_detalles_json")), &lines); err != nil {
		fail(http.StatusBadRequest, "Detalle del recibo ilegible")
		return
	}
	if len(lines) == 0 {
		fail(http.StatusBadRequest, "El recibo no tiene partidas")
		return
	}

	items := make([]service.ReceiptItemInput, 0, len(lines))
	for _, line := range lines {
		description := line.Description
		if description == "" {
			description = line.DescriptionAlt
		}
		items = append(items, service.ReceiptItemInput{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			Description: description,
			UnitPrice:   line.UnitPrice,
			Discount:    line.Discount,
		})
	}

	input := &service.CreateReceiptInput{
		PatientID:       uint(patientID),
		PractitionerID:  uint(practitionerID),
		Items:           items,
		CashPayment:     formAmount(c, "pago_efectivo"),
		CardPayment:     formAmount(c, "pago_tarjeta"),
		TransferPayment: formAmount(c, "pago_transferencia"),
		OtherPayment:    formAmount(c, "pago_otro"),
	}

	if fecha := c.PostForm("fecha"); fecha != "" {
		parsed, err := dates.Parse(fecha)
		if err != nil {
			fail(http.StatusBadRequest, "Fecha inválida")
			return
		}
		input.Date = parsed
	}
	if desc := c.PostForm("pago_otro_desc"); desc != "" {
		input.OtherPaymentDesc = &desc
	}
	if notas := c.PostForm("notas"); notas != "" {
		input.Notes = &notas
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), input)
	if err != nil {
		appErr := apperror.GetAppError(err)
		fail(appErr.Code, appErr.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Recibo guardado correctamente",
		"pdf_url":          fmt.Sprintf("/api/v1/recibos/%d/pdf", receipt.ID),
		"view_receipt_url": fmt.Sprintf("/api/v1/recibos/%d", receipt.ID),
	})
}

func formAmount(c *gin.Context, field string) float64 {
	value, err := strconv.ParseFloat(c.PostForm(field), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// Get returns a receipt with its line items and payment history
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved", receipt)
}

// List handles listing receipts with filters
func (h *ReceiptHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ReceiptFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if value, err := strconv.ParseUint(c.Query("id_px"), 10, 32); err == nil && value > 0 {
		patientID := uint(value)
		params.PatientID = &patientID
	}
	if value, err := strconv.ParseUint(c.Query("id_dr"), 10, 32); err == nil && value > 0 {
		practitionerID := uint(value)
		params.PractitionerID = &practitionerID
	}
	if estado := c.Query("estado"); estado != "" {
		status := enum.ReceiptStatus(estado)
		params.Status = &status
	}
	if from := c.Query("desde"); from != "" {
		if parsed, err := dates.Parse(from); err == nil {
			params.StartDate = &parsed
		}
	}
	if to := c.Query("hasta"); to != "" {
		if parsed, err := dates.Parse(to); err == nil {
			params.EndDate = &parsed
		}
	}

	receipts, total, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(receipts, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Receipts retrieved", result)
}

// ListByPatient lists a patient's receipts, newest first
func (h *ReceiptHandler) ListByPatient(c *gin.Context) {
	patientID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	receipts, err := h.receiptService.ListPatientReceipts(c.Request.Context(), patientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved", receipts)
}

// RegisterInstallment records a payment against a pending receipt
func (h *ReceiptHandler) RegisterInstallment(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.RegisterInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.RegisterInstallmentInput{
		ReceiptID: id,
		Amount:    req.Amount,
		Method:    req.Method,
		Notes:     req.Notes,
	}
	if req.Date != "" {
		parsed, err := dates.Parse(req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date")
			return
		}
		input.Date = parsed
	}

	receipt, err := h.receiptService.RegisterInstallment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installment registered", receipt)
}

// PatientDebt returns the patient's outstanding balance summary
func (h *ReceiptHandler) PatientDebt(c *gin.Context) {
	patientID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	debt, err := h.receiptService.GetPatientDebt(c.Request.Context(), patientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Debt retrieved", debt)
}

// PDF streams the receipt as a PDF document
func (h *ReceiptHandler) PDF(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	pdf, err := h.documentService.ReceiptPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="recibo-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
