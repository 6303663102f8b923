package handler_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quotedesk/internal/domain"
	"quotedesk/internal/export"
	"quotedesk/internal/handler"
	"quotedesk/internal/service"
	"quotedesk/mocks"
)

func newExportHandler() (*handler.ExportHandler, *mocks.MockExportService) {
	mockSvc := new(mocks.MockExportService)
	return handler.NewExportHandler(mockSvc), mockSvc
}

func TestExportHandler_Register(t *testing.T) {
	h, mockSvc := newExportHandler()
	tenantID := uuid.New()

	mockSvc.On("WriteRegister", mock.Anything, tenantID, mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(2).(io.Writer)
			_, _ = w.Write(export.BOM)
			_, _ = io.WriteString(w, "Document Type,Number\n")
		}).
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/quotations/export", http.NoBody)
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.Register(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "quotations_")
	assert.Equal(t, export.BOM, w.Body.Bytes()[:len(export.BOM)])
	mockSvc.AssertExpectations(t)
}

func TestExportHandler_Register_Error(t *testing.T) {
	h, mockSvc := newExportHandler()
	mockSvc.On("WriteRegister", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = args.Get(2).(io.Writer).Write(export.BOM)
		}).
		Return(errors.New("db down"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/quotations/export", http.NoBody)
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.Register(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestExportHandler_Workbook(t *testing.T) {
	h, mockSvc := newExportHandler()
	tenantID, id := uuid.New(), uuid.New()
	mockSvc.On("Workbook", mock.Anything, tenantID, id).
		Return(&service.WorkbookFile{Filename: "quotation_QT-7.xlsx", Data: []byte("PK\x03\x04")}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/quotations/"+id.String()+"/workbook", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.Workbook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.WorkbookContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=quotation_QT-7.xlsx`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK\x03\x04", w.Body.String())
}

func TestExportHandler_Archive(t *testing.T) {
	h, mockSvc := newExportHandler()
	tenantID, id := uuid.New(), uuid.New()
	mockSvc.On("Archive", mock.Anything, tenantID, id).Return(&service.ArchiveResult{
		Key:       "quotations/x.xlsx",
		URL:       "https://signed",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/quotations/"+id.String()+"/archive", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.Archive(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "https://signed", data["url"])
}

func TestExportHandler_Archive_UploadFailed(t *testing.T) {
	h, mockSvc := newExportHandler()
	id := uuid.New()
	mockSvc.On("Archive", mock.Anything, mock.Anything, id).Return(nil, domain.ErrUploadFailed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/quotations/"+id.String()+"/archive", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.Archive(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "UPLOAD_FAILED", decodeResponse(t, w).Error.Code)
}

func TestExportHandler_Send_NoEmail(t *testing.T) {
	h, mockSvc := newExportHandler()
	id := uuid.New()
	mockSvc.On("Send", mock.Anything, mock.Anything, id).Return(nil, domain.ErrCustomerEmailMissing)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/quotations/"+id.String()+"/send", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.Send(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "CUSTOMER_EMAIL_MISSING", decodeResponse(t, w).Error.Code)
}

func TestExportHandler_Send(t *testing.T) {
	h, mockSvc := newExportHandler()
	tenantID, id := uuid.New(), uuid.New()
	mockSvc.On("Send", mock.Anything, tenantID, id).
		Return(&service.SendResult{To: "buyer@example.com", URL: "https://signed"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/quotations/"+id.String()+"/send", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.Send(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "buyer@example.com", decodeResponse(t, w).Data.(map[string]interface{})["to"])
	mockSvc.AssertExpectations(t)
}
