package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quirodesk/clinica-api/internal/application/service"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/request"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/response"
	"github.com/quirodesk/clinica-api/pkg/dates"
)

// CarePlanHandler handles care plan HTTP requests
type CarePlanHandler struct {
	carePlanService *service.CarePlanService
}

// NewCarePlanHandler creates a new care plan handler
func NewCarePlanHandler(carePlanService *service.CarePlanService) *CarePlanHandler {
	return &CarePlanHandler{carePlanService: carePlanService}
}

// Create stores a quoted care plan
func (h *CarePlanHandler) Create(c *gin.Context) {
	var req request.CreateCarePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := dates.Parse(req.Date)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		date = parsed
	}

	plan, err := h.carePlanService.CreateCarePlan(c.Request.Context(), &service.CreateCarePlanInput{
		PatientID:       req.PatientID,
		PractitionerID:  req.PractitionerID,
		Date:            date,
		Diagnosis:       req.Diagnosis,
		ChiroVisits:     req.ChiroVisits,
		ChiroUnitCost:   req.ChiroUnitCost,
		TherapyVisits:   req.TherapyVisits,
		TherapyUnitCost: req.TherapyUnitCost,
		PromoPercent:    req.PromoPercent,
		Stage:           req.Stage,
		AddonIDs:        req.AddonIDs,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Care plan saved", plan)
}

// Get returns a care plan by ID
func (h *CarePlanHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.carePlanService.GetCarePlan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Care plan retrieved", plan)
}

// Quote prices a plan without persisting it, for the quoting screen
func (h *CarePlanHandler) Quote(c *gin.Context) {
	var req request.CreateCarePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote := service.QuotePlan(req.ChiroVisits, req.ChiroUnitCost, req.TherapyVisits, req.TherapyUnitCost, req.PromoPercent)
	response.OK(c, "Plan quoted", quote)
}

// ListByPatient returns a patient's care plans, newest first
func (h *CarePlanHandler) ListByPatient(c *gin.Context) {
	patientID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	plans, err := h.carePlanService.ListPatientPlans(c.Request.Context(), patientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Care plans retrieved", plans)
}

// ActiveByPatient returns the patient's current plan, if any
func (h *CarePlanHandler) ActiveByPatient(c *gin.Context) {
	patientID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	plan, err := h.carePlanService.GetActivePlan(c.Request.Context(), patientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active plan", plan)
}

// Delete removes a care plan
func (h *CarePlanHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid plan ID")
		return
	}

	if err := h.carePlanService.DeleteCarePlan(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Care plan deleted", nil)
}
