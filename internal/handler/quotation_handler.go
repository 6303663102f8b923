package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotedesk/internal/service"
)

// QuotationHandler handles quotation drafting and CRUD endpoints.
type QuotationHandler struct {
	quotationService service.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler.
func NewQuotationHandler(quotationService service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// bindQuotation reads a QuotationInput body and stamps it with the caller's identity.
func bindQuotation(c *gin.Context) (*service.QuotationInput, bool) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return nil, false
	}
	var input service.QuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return nil, false
	}
	input.TenantID = tenantID
	input.UserID = userID
	return &input, true
}

// Preview handles POST /api/v1/quotations/preview
// @Summary Preview a quotation
// @Description Compute line taxes, tax context and totals for a draft without saving it. Optionally opens the billing details of one line.
// @Tags quotations
// @Accept json
// @Produce json
// @Param request body service.QuotationInput true "Draft document"
// @Success 200 {object} Response{data=service.QuotationResult} "Computed draft"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Branch, customer, address or item not found"
// @Failure 502 {object} ErrorResponseBody "Master data service unavailable"
// @Security BearerAuth
// @Router /quotations/preview [post]
func (h *QuotationHandler) Preview(c *gin.Context) {
	input, ok := bindQuotation(c)
	if !ok {
		return
	}

	result, err := h.quotationService.Preview(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Create handles POST /api/v1/quotations
// @Summary Create a quotation
// @Description Compute and save a sales or purchase document
// @Tags quotations
// @Accept json
// @Produce json
// @Param request body service.QuotationInput true "Document"
// @Success 201 {object} Response{data=domain.Quotation} "Quotation created"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Branch, customer, address or item not found"
// @Failure 422 {object} ErrorResponseBody "Customer, sales person or line items missing"
// @Failure 502 {object} ErrorResponseBody "Master data service unavailable"
// @Security BearerAuth
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	input, ok := bindQuotation(c)
	if !ok {
		return
	}

	q, err := h.quotationService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, q)
}

// List handles GET /api/v1/quotations
// @Summary List quotations
// @Description List the tenant's documents, newest issue date first
// @Tags quotations
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Quotation,meta=PagMeta} "Quotations"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	quotations, total, err := h.quotationService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, quotations, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/quotations/:id
// @Summary Get quotation by ID
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Success 200 {object} Response{data=domain.Quotation} "Quotation"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	q, err := h.quotationService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Update handles PUT /api/v1/quotations/:id
// @Summary Replace a quotation
// @Description Recompute a stored document from a full request body. Clears any archived workbook.
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Param request body service.QuotationInput true "Document"
// @Success 200 {object} Response{data=domain.Quotation} "Quotation updated"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Failure 422 {object} ErrorResponseBody "Customer, sales person or line items missing"
// @Security BearerAuth
// @Router /quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := bindQuotation(c)
	if !ok {
		return
	}

	q, err := h.quotationService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// ChangeContext handles PATCH /api/v1/quotations/:id/context
// @Summary Change document type, branch or address
// @Description Reprice a stored document after switching its document type, branch, billing or shipping address. Omitted fields keep their stored value.
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Param request body ChangeContextRequest true "Fields to change"
// @Success 200 {object} Response{data=domain.Quotation} "Quotation repriced"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Quotation, branch or address not found"
// @Security BearerAuth
// @Router /quotations/{id}/context [patch]
func (h *QuotationHandler) ChangeContext(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input service.ChangeContextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if input.DocumentType == nil && input.BranchID == nil && input.BillingAddressID == nil && input.ShippingAddressID == nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "nothing to change")
		return
	}
	input.TenantID = tenantID
	input.ID = id

	q, err := h.quotationService.ChangeContext(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Delete handles DELETE /api/v1/quotations/:id
// @Summary Delete a quotation
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Quotation deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Admin role required"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "quotation deleted"})
}
