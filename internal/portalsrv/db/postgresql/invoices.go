package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// CreateInvoice inserts an invoice. A second invoice for the same tenancy and
// period start is skipped via ON CONFLICT, which is what makes the sweep
// idempotent.
func (bm *billingManager) CreateInvoice(ctx context.Context, invoice *models.Invoice) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	invoiceID := invoice.InvoiceID
	if invoiceID == uuid.Nil {
		invoiceID = uuid.New()
	}
	query := `
		INSERT INTO invoices (invoice_id, org_id, tenancy_id, unit_id, number, period_start, period_end, due_on, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tenancy_id, period_start, org_id) DO NOTHING
		RETURNING invoice_id;
	`
	var insertedID uuid.UUID
	err := bm.conn().QueryRowContext(ctx, query, invoiceID, orgID, invoice.TenancyID, invoice.UnitID,
		invoice.Number, invoice.PeriodStart, invoice.PeriodEnd, invoice.DueOn, invoice.Amount, models.InvoiceStatusPending).Scan(&insertedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("invoice already exists for period")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch {
			case pgErr.Code == "23505" && pgErr.ConstraintName == "invoices_number_org_id_key":
				return dberror.ErrAlreadyExists.Msg("invoice number already exists")
			case pgErr.Code == "23503" && pgErr.ConstraintName == "invoices_tenancy_id_fkey":
				return dberror.ErrInvalidTenancy
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("number", invoice.Number).Msg("failed to insert invoice")
		return dberror.ErrDatabase.Err(err)
	}
	invoice.InvoiceID = insertedID
	invoice.Status = models.InvoiceStatusPending
	return nil
}

// GetInvoice retrieves an invoice by ID.
func (bm *billingManager) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT invoice_id, tenancy_id, unit_id, number, period_start, period_end, due_on, amount, status, paid_at, created_at
		FROM invoices
		WHERE invoice_id = $1 AND org_id = $2;
	`
	invoice := &models.Invoice{}
	err := bm.conn().QueryRowContext(ctx, query, invoiceID, orgID).
		Scan(&invoice.InvoiceID, &invoice.TenancyID, &invoice.UnitID, &invoice.Number, &invoice.PeriodStart,
			&invoice.PeriodEnd, &invoice.DueOn, &invoice.Amount, &invoice.Status, &invoice.PaidAt, &invoice.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("invoice not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve invoice")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return invoice, nil
}

// ListInvoices lists invoices with optional tenancy/user/status filters.
func (bm *billingManager) ListInvoices(ctx context.Context, filter models.InvoiceFilter) ([]*models.Invoice, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT i.invoice_id, i.tenancy_id, i.unit_id, i.number, i.period_start, i.period_end, i.due_on, i.amount, i.status, i.paid_at, i.created_at
		FROM invoices i
		JOIN tenancies t ON t.tenancy_id = i.tenancy_id AND t.org_id = i.org_id
		WHERE i.org_id = $1
		  AND ($2::uuid IS NULL OR i.tenancy_id = $2)
		  AND ($3::uuid IS NULL OR t.user_id = $3)
		  AND ($4 = '' OR i.status = $4)
		ORDER BY i.period_start DESC, i.created_at DESC;
	`
	tenancyID := uuid.NullUUID{UUID: filter.TenancyID, Valid: filter.TenancyID != uuid.Nil}
	userID := uuid.NullUUID{UUID: filter.UserID, Valid: filter.UserID != uuid.Nil}
	rows, err := bm.conn().QueryContext(ctx, query, orgID, tenancyID, userID, filter.Status)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list invoices")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		if err := rows.Scan(&invoice.InvoiceID, &invoice.TenancyID, &invoice.UnitID, &invoice.Number, &invoice.PeriodStart,
			&invoice.PeriodEnd, &invoice.DueOn, &invoice.Amount, &invoice.Status, &invoice.PaidAt, &invoice.CreatedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan invoice")
			return nil, dberror.ErrDatabase.Err(err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return invoices, nil
}

// UpdateInvoiceStatus transitions an invoice's status. Paid and void are
// terminal; transitioning an invoice that already left 'pending' returns
// ErrAlreadyExists.
func (bm *billingManager) UpdateInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string, paidAt *time.Time) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	query := `
		UPDATE invoices
		SET status = $1, paid_at = $2
		WHERE invoice_id = $3 AND org_id = $4 AND status = $5
		RETURNING invoice_id;
	`
	var returnedID uuid.UUID
	err := bm.conn().QueryRowContext(ctx, query, status, paidAt, invoiceID, orgID, models.InvoiceStatusPending).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			if _, gerr := bm.GetInvoice(ctx, invoiceID); gerr != nil {
				return gerr
			}
			return dberror.ErrAlreadyExists.Msg("invoice already settled")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update invoice status")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// ListPendingInvoicesByAmount returns pending invoices whose amount equals
// the given value, joined with the tenant's email for sender matching.
func (bm *billingManager) ListPendingInvoicesByAmount(ctx context.Context, amount decimal.Decimal) ([]*models.InvoiceCandidate, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT i.invoice_id, i.tenancy_id, i.unit_id, i.number, i.period_start, i.period_end, i.due_on, i.amount, i.status, i.paid_at, i.created_at,
		       u.email AS tenant_email
		FROM invoices i
		JOIN tenancies t ON t.tenancy_id = i.tenancy_id AND t.org_id = i.org_id
		JOIN users u ON u.user_id = t.user_id AND u.org_id = t.org_id
		WHERE i.org_id = $1 AND i.status = $2 AND i.amount = $3
		ORDER BY i.due_on;
	`
	rows, err := bm.conn().QueryContext(ctx, query, orgID, models.InvoiceStatusPending, amount)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list pending invoices by amount")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var candidates []*models.InvoiceCandidate
	for rows.Next() {
		c := &models.InvoiceCandidate{}
		if err := rows.Scan(&c.InvoiceID, &c.TenancyID, &c.UnitID, &c.Number, &c.PeriodStart,
			&c.PeriodEnd, &c.DueOn, &c.Amount, &c.Status, &c.PaidAt, &c.CreatedAt, &c.TenantEmail); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan invoice candidate")
			return nil, dberror.ErrDatabase.Err(err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return candidates, nil
}
