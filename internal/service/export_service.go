package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quotedesk/internal/config"
	"quotedesk/internal/domain"
	"quotedesk/internal/export"
	"quotedesk/internal/metrics"
	"quotedesk/internal/port"
)

const registerPageSize = 500

// WorkbookFile is a rendered XLSX document.
type WorkbookFile struct {
	Filename string
	Data     []byte
}

// ArchiveResult describes an uploaded workbook.
type ArchiveResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SendResult describes a delivered quotation email.
type SendResult struct {
	To  string `json:"to"`
	URL string `json:"url"`
}

// ExportService defines the export, archive and email contract.
type ExportService interface {
	WriteRegister(ctx context.Context, tenantID uuid.UUID, w io.Writer) error
	Workbook(ctx context.Context, tenantID, id uuid.UUID) (*WorkbookFile, error)
	Archive(ctx context.Context, tenantID, id uuid.UUID) (*ArchiveResult, error)
	Send(ctx context.Context, tenantID, id uuid.UUID) (*SendResult, error)
}

type exportService struct {
	repo    port.QuotationRepository
	records port.MasterDataSource
	storage port.ObjectStorage
	email   port.EmailSender
	s3Cfg   config.S3Config
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	repo port.QuotationRepository,
	records port.MasterDataSource,
	storage port.ObjectStorage,
	email port.EmailSender,
	s3Cfg config.S3Config,
	m *metrics.Metrics,
	log *zap.Logger,
) ExportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &exportService{
		repo:    repo,
		records: records,
		storage: storage,
		email:   email,
		s3Cfg:   s3Cfg,
		metrics: m,
		log:     log.Named("export"),
		now:     time.Now,
	}
}

// WriteRegister streams every quotation of the tenant as CSV, one page at a time.
func (s *exportService) WriteRegister(ctx context.Context, tenantID uuid.UUID, w io.Writer) (err error) {
	defer func() { s.metrics.ObserveExport("register", err) }()

	if _, err = w.Write(export.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := export.NewRegisterWriter(w)
	if err = cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing register header: %w", err)
	}

	for offset := 0; ; offset += registerPageSize {
		var page []domain.Quotation
		var total int
		page, total, err = s.repo.ListByTenant(ctx, tenantID, offset, registerPageSize)
		if err != nil {
			return err
		}
		if err = cw.WriteQuotations(page); err != nil {
			return fmt.Errorf("writing register rows: %w", err)
		}
		cw.Flush()
		if err = cw.Error(); err != nil {
			return fmt.Errorf("flushing register: %w", err)
		}
		if len(page) < registerPageSize || offset+len(page) >= total {
			return nil
		}
	}
}

func (s *exportService) Workbook(ctx context.Context, tenantID, id uuid.UUID) (file *WorkbookFile, err error) {
	defer func() { s.metrics.ObserveExport("workbook", err) }()

	q, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return renderWorkbook(q)
}

// Archive renders the workbook, uploads it under <prefix>/<tenant>/<id>.xlsx,
// records the key and returns a presigned download URL.
func (s *exportService) Archive(ctx context.Context, tenantID, id uuid.UUID) (res *ArchiveResult, err error) {
	defer func() { s.metrics.ObserveExport("archive", err) }()

	q, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.archive(ctx, q)
}

// Send emails the customer a link to the document, archiving it first when the
// stored workbook is missing or stale.
func (s *exportService) Send(ctx context.Context, tenantID, id uuid.UUID) (res *SendResult, err error) {
	defer func() { s.metrics.ObserveExport("email", err) }()

	q, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	customer, err := s.records.GetCustomer(ctx, tenantID, q.CustomerID)
	if err != nil {
		return nil, err
	}
	to := strings.TrimSpace(customer.Email)
	if to == "" {
		return nil, domain.ErrCustomerEmailMissing
	}

	var url string
	if q.ArchiveKey == "" {
		var archived *ArchiveResult
		if archived, err = s.archive(ctx, q); err != nil {
			return nil, err
		}
		url = archived.URL
	} else {
		url, err = s.storage.PresignDownload(ctx, s.s3Cfg.Bucket, q.ArchiveKey, export.WorkbookFilename(q), s.s3Cfg.PresignExpiry)
		if err != nil {
			return nil, fmt.Errorf("presigning workbook: %w", err)
		}
	}

	err = s.email.SendQuotationEmail(ctx, port.QuotationEmail{
		ToEmail:        to,
		ToName:         customer.Name,
		DocumentType:   string(q.DocumentType),
		DocumentNumber: q.DocumentNumber,
		GrandTotal:     q.GrandTotal.StringFixed(2),
		DownloadURL:    url,
	})
	if err != nil {
		return nil, fmt.Errorf("sending quotation email: %w", err)
	}

	s.log.Info("quotation sent",
		zap.String("quotation_id", q.ID.String()),
		zap.String("to", to),
	)
	return &SendResult{To: to, URL: url}, nil
}

func (s *exportService) archive(ctx context.Context, q *domain.Quotation) (*ArchiveResult, error) {
	file, err := renderWorkbook(q)
	if err != nil {
		return nil, err
	}

	key := ArchiveKey(s.s3Cfg.ArchivePrefix, q.TenantID, q.ID)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(file.Data),
		ContentType: export.WorkbookContentType,
		Size:        int64(len(file.Data)),
	})
	if err != nil {
		s.log.Error("workbook upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	if err := s.repo.UpdateArchiveKey(ctx, q.TenantID, q.ID, key); err != nil {
		return nil, err
	}
	q.ArchiveKey = key

	url, err := s.storage.PresignDownload(ctx, s.s3Cfg.Bucket, key, file.Filename, s.s3Cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning workbook: %w", err)
	}

	s.log.Info("workbook archived", zap.String("quotation_id", q.ID.String()), zap.String("key", key))
	return &ArchiveResult{
		Key:       key,
		URL:       url,
		ExpiresAt: s.now().UTC().Add(time.Duration(s.s3Cfg.PresignExpiry) * time.Second),
	}, nil
}

func renderWorkbook(q *domain.Quotation) (*WorkbookFile, error) {
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, q); err != nil {
		return nil, err
	}
	return &WorkbookFile{Filename: export.WorkbookFilename(q), Data: buf.Bytes()}, nil
}

// ArchiveKey is the object key of a document's archived workbook.
func ArchiveKey(prefix string, tenantID, id uuid.UUID) string {
	return path.Join(prefix, tenantID.String(), id.String()+".xlsx")
}
