package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"quotedesk/internal/domain"
	"quotedesk/internal/port"
)

type quotationRepo struct {
	db *sqlx.DB
}

// NewQuotationRepo creates a new PostgreSQL-backed QuotationRepository.
func NewQuotationRepo(db *sqlx.DB) port.QuotationRepository {
	return &quotationRepo{db: db}
}

const quotationColumns = `id, tenant_id, document_type, series_id, document_number, customer_id,
	branch_id, billing_address_id, shipping_address_id, sales_person_id, issue_date, valid_until,
	notes, terms, include_round_off, total_amount, tax_amount, roundoff_amount, grand_total,
	payload, archive_key, created_by, created_at, updated_at`

func (r *quotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	query := `INSERT INTO quotations (` + quotationColumns + `)
		VALUES (:id, :tenant_id, :document_type, :series_id, :document_number, :customer_id,
			:branch_id, :billing_address_id, :shipping_address_id, :sales_person_id, :issue_date, :valid_until,
			:notes, :terms, :include_round_off, :total_amount, :tax_amount, :roundoff_amount, :grand_total,
			:payload, :archive_key, :created_by, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return fmt.Errorf("quotationRepo.Create: %w", err)
	}
	return nil
}

func (r *quotationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Quotation, error) {
	var q domain.Quotation
	err := r.db.GetContext(ctx, &q,
		"SELECT "+quotationColumns+" FROM quotations WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuotationNotFound
		}
		return nil, fmt.Errorf("quotationRepo.GetByID: %w", err)
	}
	return &q, nil
}

func (r *quotationRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Quotation, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM quotations WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("quotationRepo.ListByTenant count: %w", err)
	}

	var quotations []domain.Quotation
	err = r.db.SelectContext(ctx, &quotations,
		"SELECT "+quotationColumns+` FROM quotations WHERE tenant_id = $1
		 ORDER BY issue_date DESC, created_at DESC LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("quotationRepo.ListByTenant: %w", err)
	}
	return quotations, total, nil
}

func (r *quotationRepo) Update(ctx context.Context, q *domain.Quotation) error {
	q.UpdatedAt = time.Now().UTC()
	query := `UPDATE quotations SET
			document_type = :document_type, series_id = :series_id, document_number = :document_number,
			customer_id = :customer_id, branch_id = :branch_id, billing_address_id = :billing_address_id,
			shipping_address_id = :shipping_address_id, sales_person_id = :sales_person_id,
			issue_date = :issue_date, valid_until = :valid_until, notes = :notes, terms = :terms,
			include_round_off = :include_round_off, total_amount = :total_amount, tax_amount = :tax_amount,
			roundoff_amount = :roundoff_amount, grand_total = :grand_total, payload = :payload,
			archive_key = :archive_key, updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.db.NamedExecContext(ctx, query, q)
	if err != nil {
		return fmt.Errorf("quotationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

func (r *quotationRepo) UpdateArchiveKey(ctx context.Context, tenantID, id uuid.UUID, key string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE quotations SET archive_key = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4",
		key, time.Now().UTC(), id, tenantID)
	if err != nil {
		return fmt.Errorf("quotationRepo.UpdateArchiveKey: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

func (r *quotationRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM quotations WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return fmt.Errorf("quotationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}
