package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/quirodesk/clinica-api/internal/application/service"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles thermal printer HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status returns printer configuration and connection state
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", h.printerService.GetStatus())
}

// Test sends a test page to the configured printer
func (h *PrinterHandler) Test(c *gin.Context) {
	if err := h.printerService.TestPrint(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test page sent", nil)
}

// PrintReceipt re-prints the thermal ticket for a saved receipt
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.printerService.PrintReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}
