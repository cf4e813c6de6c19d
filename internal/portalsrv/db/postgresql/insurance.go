package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// CreateInsuranceRecord files a policy for review.
func (pm *portalManager) CreateInsuranceRecord(ctx context.Context, rec *models.InsuranceRecord) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	insuranceID := rec.InsuranceID
	if insuranceID == uuid.Nil {
		insuranceID = uuid.New()
	}
	query := `
		INSERT INTO insurance_records (insurance_id, org_id, tenancy_id, provider, policy_number, expires_on, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING insurance_id;
	`
	var insertedID uuid.UUID
	err := pm.conn().QueryRowContext(ctx, query, insuranceID, orgID, rec.TenancyID, rec.Provider,
		rec.PolicyNumber, rec.ExpiresOn, models.InsuranceStatusPending).Scan(&insertedID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch {
			case pgErr.Code == "23503" && pgErr.ConstraintName == "insurance_records_tenancy_id_fkey":
				return dberror.ErrInvalidTenancy
			case pgErr.Code == "23514":
				return dberror.ErrInvalidInput.Msg("invalid insurance attributes")
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("policy_number", rec.PolicyNumber).Msg("failed to insert insurance record")
		return dberror.ErrDatabase.Err(err)
	}
	rec.InsuranceID = insertedID
	rec.Status = models.InsuranceStatusPending
	return nil
}

// GetInsuranceRecord retrieves a record by ID.
func (pm *portalManager) GetInsuranceRecord(ctx context.Context, insuranceID uuid.UUID) (*models.InsuranceRecord, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT insurance_id, tenancy_id, provider, policy_number, expires_on, status, reviewed_at, created_at
		FROM insurance_records
		WHERE insurance_id = $1 AND org_id = $2;
	`
	rec := &models.InsuranceRecord{}
	err := pm.conn().QueryRowContext(ctx, query, insuranceID, orgID).
		Scan(&rec.InsuranceID, &rec.TenancyID, &rec.Provider, &rec.PolicyNumber, &rec.ExpiresOn,
			&rec.Status, &rec.ReviewedAt, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("insurance record not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve insurance record")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return rec, nil
}

// ListInsuranceRecords lists records, optionally limited to one tenancy.
func (pm *portalManager) ListInsuranceRecords(ctx context.Context, tenancyID uuid.UUID) ([]*models.InsuranceRecord, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT insurance_id, tenancy_id, provider, policy_number, expires_on, status, reviewed_at, created_at
		FROM insurance_records
		WHERE org_id = $1 AND ($2::uuid IS NULL OR tenancy_id = $2)
		ORDER BY created_at DESC;
	`
	filterID := uuid.NullUUID{UUID: tenancyID, Valid: tenancyID != uuid.Nil}
	rows, err := pm.conn().QueryContext(ctx, query, orgID, filterID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list insurance records")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var records []*models.InsuranceRecord
	for rows.Next() {
		rec := &models.InsuranceRecord{}
		if err := rows.Scan(&rec.InsuranceID, &rec.TenancyID, &rec.Provider, &rec.PolicyNumber, &rec.ExpiresOn,
			&rec.Status, &rec.ReviewedAt, &rec.CreatedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan insurance record")
			return nil, dberror.ErrDatabase.Err(err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return records, nil
}

// ReviewInsuranceRecord approves or rejects a pending record. Reviewing a
// record that already left 'pending' returns ErrAlreadyExists.
func (pm *portalManager) ReviewInsuranceRecord(ctx context.Context, insuranceID uuid.UUID, status string, reviewedAt time.Time) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	query := `
		UPDATE insurance_records
		SET status = $1, reviewed_at = $2
		WHERE insurance_id = $3 AND org_id = $4 AND status = $5
		RETURNING insurance_id;
	`
	var returnedID uuid.UUID
	err := pm.conn().QueryRowContext(ctx, query, status, reviewedAt, insuranceID, orgID, models.InsuranceStatusPending).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			if _, gerr := pm.GetInsuranceRecord(ctx, insuranceID); gerr != nil {
				return gerr
			}
			return dberror.ErrAlreadyExists.Msg("insurance record already reviewed")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to review insurance record")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
