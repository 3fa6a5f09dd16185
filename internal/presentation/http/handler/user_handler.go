package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quirodesk/clinica-api/internal/application/service"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/request"
	"github.com/quirodesk/clinica-api/internal/presentation/http/dto/response"
	"github.com/quirodesk/clinica-api/pkg/pagination"
	"github.com/quirodesk/clinica-api/pkg/utils"
)

// UserHandler handles staff account management requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing staff accounts with pagination
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Users retrieved", result)
}

// Get returns a staff account by ID
func (h *UserHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved", user)
}

// UpdateRole changes a staff account's role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), id, enum.UserRole(req.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Role updated", user)
}

// LinkPractitioner associates a staff account with a practitioner record
func (h *UserHandler) LinkPractitioner(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req struct {
		PractitionerID *uint `json:"id_dr"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.LinkPractitioner(c.Request.Context(), id, req.PractitionerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Practitioner linked", user)
}

// Delete removes a staff account
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if current := GetUserID(c); current != nil && *current == id {
		response.BadRequest(c, "You cannot delete your own account")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deleted", nil)
}
