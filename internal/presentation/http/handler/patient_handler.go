package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quirodesk/clinica-api/internal/application/service"
	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/request"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/response"
	"github.com/quirodesk/clinica-api/pkg/dates"
	"github.com/quirodesk/clinica-api/pkg/pagination"
)

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	patientService *service.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create registers a new patient
func (h *PatientHandler) Create(c *gin.Context) {
	var req request.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	patient, err := patientFromRequest(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.patientService.CreatePatient(c.Request.Context(), patient)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Patient registered", created)
}

// Get returns a patient by ID
func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient retrieved", patient)
}

// Update modifies an existing patient record
func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid patient ID")
		return
	}

	var req request.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	patient, err := patientFromRequest(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	patient.ID = id

	updated, err := h.patientService.UpdatePatient(c.Request.Context(), patient)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Patient updated", updated)
}

// List handles listing patients with pagination
func (h *PatientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	patients, total, err := h.patientService.ListPatients(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(patients, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Patients retrieved", result)
}

// Search runs the live name search backing the patient selector
func (h *PatientHandler) Search(c *gin.Context) {
	summaries, err := h.patientService.SearchPatients(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Search results", summaries)
}

// Recent returns the most recently registered patients
func (h *PatientHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	summaries, err := h.patientService.GetRecentPatients(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recent patients", summaries)
}

func patientFromRequest(req *request.CreatePatientRequest) (*entity.Patient, error) {
	patient := &entity.Patient{
		PractitionerID:   req.PractitionerID,
		FirstName:        req.FirstName,
		LastNamePaternal: req.LastNamePaternal,
		LastNameMaternal: req.LastNameMaternal,
		Referral:         req.Referral,
		Address:          req.Address,
		MaritalStatus:    req.MaritalStatus,
		Children:         req.Children,
		Occupation:       req.Occupation,
		HomePhone:        req.HomePhone,
		MobilePhone:      req.MobilePhone,
		Email:            req.Email,
		EmergencyPhone:   req.EmergencyPhone,
		EmergencyContact: req.EmergencyContact,
		EmergencyKinship: req.EmergencyKinship,
	}

	if req.Date != "" {
		parsed, err := dates.Parse(req.Date)
		if err != nil {
			return nil, err
		}
		patient.RegisteredAt = parsed
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		parsed, err := dates.Parse(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		patient.BirthDate = &parsed
	}

	return patient, nil
}
