package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	billingapp "github.com/paytrack/backend/internal/application/billing"
	crmapp "github.com/paytrack/backend/internal/application/crm"
	csvimport "github.com/paytrack/backend/internal/infrastructure/import"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *crmapp.CustomerService
	importService   *crmapp.CustomerImportService
	purchaseService *billingapp.PurchaseService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *crmapp.CustomerService, importService *crmapp.CustomerImportService, purchaseService *billingapp.PurchaseService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		importService:   importService,
		purchaseService: purchaseService,
	}
}

// CustomerDetailResponse is a customer with its purchases and schedules
type CustomerDetailResponse struct {
	crmapp.CustomerResponse
	Purchases []billingapp.PurchaseResponse `json:"purchases"`
}

// Create creates a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req crmapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.customerService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns the user's customers with search and pagination
func (h *CustomerHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var filter crmapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.customerService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a customer with its purchases and payment schedules
func (h *CustomerHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), userID, customerID)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	purchases, err := h.purchaseService.ListByCustomer(c.Request.Context(), userID, customerID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, CustomerDetailResponse{CustomerResponse: *customer, Purchases: purchases})
}

// Update edits a customer's fields
func (h *CustomerHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req crmapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.customerService.Update(c.Request.Context(), userID, customerID, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a customer with its purchases and payments
func (h *CustomerHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), userID, customerID); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkImport imports customers from an uploaded CSV file. The file may
// arrive as a multipart upload under "file" or as the raw request body.
func (h *CustomerHandler) BulkImport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	reader, err := importBody(c)
	if err != nil {
		h.BadRequest(c, "No CSV content provided")
		return
	}
	defer reader.Close()

	result, err := h.importService.Import(c.Request.Context(), userID, reader)
	if err != nil {
		switch {
		case errors.Is(err, csvimport.ErrEmptyFile),
			errors.Is(err, csvimport.ErrInvalidEncoding),
			errors.Is(err, csvimport.ErrMissingHeader):
			h.BindingError(c, err)
		default:
			h.DomainError(c, err)
		}
		return
	}
	h.Success(c, result)
}

func importBody(c *gin.Context) (io.ReadCloser, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		return fileHeader.Open()
	}
	return c.Request.Body, nil
}
