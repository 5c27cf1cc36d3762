package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	crmapp "github.com/paytrack/backend/internal/application/crm"
	identityapp "github.com/paytrack/backend/internal/application/identity"
	reportapp "github.com/paytrack/backend/internal/application/report"
)

// AdminHandler handles admin-only endpoints
type AdminHandler struct {
	BaseHandler
	userService     *identityapp.UserService
	customerService *crmapp.CustomerService
	reportService   *reportapp.ReportService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userService *identityapp.UserService, customerService *crmapp.CustomerService, reportService *reportapp.ReportService) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		customerService: customerService,
		reportService:   reportService,
	}
}

// ListUsers returns all users with their activity counters
func (h *AdminHandler) ListUsers(c *gin.Context) {
	rows, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// CreateUser creates a new user account
func (h *AdminHandler) CreateUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.userService.Create(c.Request.Context(), adminID, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// DeleteUser removes a user account
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), adminID, userID); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ResetPassword replaces a user's password
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req identityapp.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), userID, req); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Activity returns the newest activity entries across all users
func (h *AdminHandler) Activity(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			h.BadRequest(c, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	rows, err := h.reportService.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// ListCustomers returns customers across all users
func (h *AdminHandler) ListCustomers(c *gin.Context) {
	var filter crmapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.customerService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
