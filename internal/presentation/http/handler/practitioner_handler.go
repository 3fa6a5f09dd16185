package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/quirodesk/clinica-api/internal/application/service"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/response"
)

// PractitionerHandler handles practitioner and clinic lookup requests
type PractitionerHandler struct {
	practitionerService *service.PractitionerService
}

// NewPractitionerHandler creates a new practitioner handler
func NewPractitionerHandler(practitionerService *service.PractitionerService) *PractitionerHandler {
	return &PractitionerHandler{practitionerService: practitionerService}
}

// List returns all practitioners for the attending-doctor selector
func (h *PractitionerHandler) List(c *gin.Context) {
	practitioners, err := h.practitionerService.ListPractitioners(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Practitioners retrieved", practitioners)
}

// Get returns a practitioner by ID
func (h *PractitionerHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid practitioner ID")
		return
	}

	practitioner, err := h.practitionerService.GetPractitioner(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Practitioner retrieved", practitioner)
}

// Clinics returns the clinic branches
func (h *PractitionerHandler) Clinics(c *gin.Context) {
	clinics, err := h.practitionerService.ListClinics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clinics retrieved", clinics)
}
