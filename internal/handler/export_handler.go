package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quotedesk/internal/export"
	"quotedesk/internal/service"
	s3storage "quotedesk/internal/storage/s3"
)

// ExportHandler handles CSV, workbook, archive and email endpoints.
type ExportHandler struct {
	exportService service.ExportService
	now           func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService, now: time.Now}
}

// Register handles GET /api/v1/quotations/export
// @Summary Export the quotation register
// @Description Export every quotation of the tenant as a UTF-8 CSV with one row per document
// @Tags exports
// @Produce text/csv
// @Success 200 {file} file "CSV register"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /quotations/export [get]
func (h *ExportHandler) Register(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteRegister(c.Request.Context(), tenantID, &buf); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", s3storage.AttachmentDisposition(export.RegisterFilename(h.now())))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Workbook handles GET /api/v1/quotations/:id/workbook
// @Summary Download a quotation workbook
// @Description Render the document as an XLSX workbook
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Quotation ID (UUID)"
// @Success 200 {file} file "XLSX workbook"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id}/workbook [get]
func (h *ExportHandler) Workbook(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	file, err := h.exportService.Workbook(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", s3storage.AttachmentDisposition(file.Filename))
	c.Data(http.StatusOK, export.WorkbookContentType, file.Data)
}

// Archive handles POST /api/v1/quotations/:id/archive
// @Summary Archive a quotation workbook
// @Description Upload the rendered workbook to object storage and return a presigned download URL
// @Tags exports
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Success 200 {object} Response{data=service.ArchiveResult} "Workbook archived"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Failure 502 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /quotations/{id}/archive [post]
func (h *ExportHandler) Archive(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	res, err := h.exportService.Archive(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}

// Send handles POST /api/v1/quotations/:id/send
// @Summary Email a quotation to the customer
// @Description Email the customer a download link to the archived workbook, archiving it first if needed
// @Tags exports
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Success 200 {object} Response{data=service.SendResult} "Email sent"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Quotation or customer not found"
// @Failure 422 {object} ErrorResponseBody "Customer has no email address"
// @Failure 502 {object} ErrorResponseBody "Upload failed or master data unavailable"
// @Security BearerAuth
// @Router /quotations/{id}/send [post]
func (h *ExportHandler) Send(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	res, err := h.exportService.Send(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}
