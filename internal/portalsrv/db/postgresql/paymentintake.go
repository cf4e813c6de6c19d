package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// CreatePaymentIntake records an inbound payment notification. A duplicate
// reference for the org is skipped and reported as ErrAlreadyExists so the
// webhook can be retried safely.
func (bm *billingManager) CreatePaymentIntake(ctx context.Context, intake *models.PaymentIntake) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	intakeID := intake.IntakeID
	if intakeID == uuid.Nil {
		intakeID = uuid.New()
	}
	query := `
		INSERT INTO payment_intake (intake_id, org_id, reference, sender_name, sender_email, amount, received_at, raw, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (reference, org_id) DO NOTHING
		RETURNING intake_id;
	`
	var insertedID uuid.UUID
	err := bm.conn().QueryRowContext(ctx, query, intakeID, orgID, intake.Reference, intake.SenderName,
		intake.SenderEmail, intake.Amount, intake.ReceivedAt, intake.Raw, models.IntakeStatusNeedsReview).Scan(&insertedID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("reference", intake.Reference).Msg("payment intake already recorded")
			return dberror.ErrAlreadyExists.Msg("payment intake already recorded")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23514" {
			return dberror.ErrInvalidInput.Msg("invalid payment intake attributes")
		}
		log.Ctx(ctx).Error().Err(err).Str("reference", intake.Reference).Msg("failed to insert payment intake")
		return dberror.ErrDatabase.Err(err)
	}
	intake.IntakeID = insertedID
	intake.Status = models.IntakeStatusNeedsReview
	return nil
}

// GetPaymentIntake retrieves an intake record by ID.
func (bm *billingManager) GetPaymentIntake(ctx context.Context, intakeID uuid.UUID) (*models.PaymentIntake, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT intake_id, reference, sender_name, sender_email, amount, received_at, raw, status, invoice_id, matched_at, resolution_note
		FROM payment_intake
		WHERE intake_id = $1 AND org_id = $2;
	`
	intake := &models.PaymentIntake{}
	var senderName, senderEmail, note sql.NullString
	err := bm.conn().QueryRowContext(ctx, query, intakeID, orgID).
		Scan(&intake.IntakeID, &intake.Reference, &senderName, &senderEmail, &intake.Amount,
			&intake.ReceivedAt, &intake.Raw, &intake.Status, &intake.InvoiceID, &intake.MatchedAt, &note)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("payment intake not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve payment intake")
		return nil, dberror.ErrDatabase.Err(err)
	}
	intake.SenderName = senderName.String
	intake.SenderEmail = senderEmail.String
	intake.ResolutionNote = note.String
	return intake, nil
}

// ListPaymentIntake lists intake records, optionally filtered by status.
func (bm *billingManager) ListPaymentIntake(ctx context.Context, status string) ([]*models.PaymentIntake, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT intake_id, reference, sender_name, sender_email, amount, received_at, raw, status, invoice_id, matched_at, resolution_note
		FROM payment_intake
		WHERE org_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY received_at DESC;
	`
	rows, err := bm.conn().QueryContext(ctx, query, orgID, status)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list payment intake")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var intakes []*models.PaymentIntake
	for rows.Next() {
		intake := &models.PaymentIntake{}
		var senderName, senderEmail, note sql.NullString
		if err := rows.Scan(&intake.IntakeID, &intake.Reference, &senderName, &senderEmail, &intake.Amount,
			&intake.ReceivedAt, &intake.Raw, &intake.Status, &intake.InvoiceID, &intake.MatchedAt, &note); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan payment intake")
			return nil, dberror.ErrDatabase.Err(err)
		}
		intake.SenderName = senderName.String
		intake.SenderEmail = senderEmail.String
		intake.ResolutionNote = note.String
		intakes = append(intakes, intake)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return intakes, nil
}

// MatchPaymentIntake marks the invoice paid and the intake matched in one
// transaction. Both rows must still be in their open state; otherwise the
// whole operation rolls back.
func (bm *billingManager) MatchPaymentIntake(ctx context.Context, intakeID uuid.UUID, invoiceID uuid.UUID, note string) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}

	tx, err := bm.conn().BeginTx(ctx, nil)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to begin transaction")
		return dberror.ErrDatabase.Err(err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	invoiceQuery := `
		UPDATE invoices
		SET status = $1, paid_at = now()
		WHERE invoice_id = $2 AND org_id = $3 AND status = $4
		RETURNING invoice_id;
	`
	var returnedInvoiceID uuid.UUID
	err = tx.QueryRowContext(ctx, invoiceQuery, models.InvoiceStatusPaid, invoiceID, orgID, models.InvoiceStatusPending).Scan(&returnedInvoiceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrInvalidInvoice.Msg("invoice is not pending")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to mark invoice paid")
		return dberror.ErrDatabase.Err(err)
	}

	intakeQuery := `
		UPDATE payment_intake
		SET status = $1, invoice_id = $2, matched_at = now(), resolution_note = $3
		WHERE intake_id = $4 AND org_id = $5 AND status = $6
		RETURNING intake_id;
	`
	var returnedIntakeID uuid.UUID
	err = tx.QueryRowContext(ctx, intakeQuery, models.IntakeStatusMatched, invoiceID, note, intakeID, orgID, models.IntakeStatusNeedsReview).Scan(&returnedIntakeID)
	if err != nil {
		if err == sql.ErrNoRows {
			if _, gerr := bm.getIntakeTx(ctx, tx, intakeID, orgID); gerr != nil {
				return gerr
			}
			return dberror.ErrAlreadyExists.Msg("payment intake already resolved")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to mark intake matched")
		return dberror.ErrDatabase.Err(err)
	}

	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to commit match transaction")
		return dberror.ErrDatabase.Err(err)
	}
	committed = true
	return nil
}

func (bm *billingManager) getIntakeTx(ctx context.Context, tx *sql.Tx, intakeID uuid.UUID, orgID pmcommon.OrgId) (string, apperrors.Error) {
	var status string
	err := tx.QueryRowContext(ctx, `SELECT status FROM payment_intake WHERE intake_id = $1 AND org_id = $2;`, intakeID, orgID).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", dberror.ErrNotFound.Msg("payment intake not found")
		}
		return "", dberror.ErrDatabase.Err(err)
	}
	return status, nil
}

// DismissPaymentIntake closes an intake record without matching it to an
// invoice.
func (bm *billingManager) DismissPaymentIntake(ctx context.Context, intakeID uuid.UUID, note string) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	query := `
		UPDATE payment_intake
		SET status = $1, resolution_note = $2
		WHERE intake_id = $3 AND org_id = $4 AND status = $5
		RETURNING intake_id;
	`
	var returnedID uuid.UUID
	err := bm.conn().QueryRowContext(ctx, query, models.IntakeStatusDismissed, note, intakeID, orgID, models.IntakeStatusNeedsReview).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			if _, gerr := bm.GetPaymentIntake(ctx, intakeID); gerr != nil {
				return gerr
			}
			return dberror.ErrAlreadyExists.Msg("payment intake already resolved")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to dismiss payment intake")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
