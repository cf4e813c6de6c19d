package postgresql

import (
	"context"
	"database/sql"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// CreateOrg creates a new organisation. Returns ErrAlreadyExists if the org
// ID is taken.
func (mm *metadataManager) CreateOrg(ctx context.Context, org *models.Org) apperrors.Error {
	query := `
		INSERT INTO orgs (org_id, name)
		VALUES ($1, $2)
		ON CONFLICT (org_id) DO NOTHING
		RETURNING org_id;
	`
	var insertedID string
	err := mm.conn().QueryRowContext(ctx, query, org.OrgID, org.Name).Scan(&insertedID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("org_id", string(org.OrgID)).Msg("org already exists")
			return dberror.ErrAlreadyExists.Msg("org already exists")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23514" {
			return dberror.ErrInvalidInput.Msg("invalid org id format")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert org")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// GetOrg retrieves an organisation by ID.
func (mm *metadataManager) GetOrg(ctx context.Context, orgID pmcommon.OrgId) (*models.Org, apperrors.Error) {
	query := `
		SELECT org_id, name, created_at, updated_at
		FROM orgs
		WHERE org_id = $1;
	`
	org := &models.Org{}
	err := mm.conn().QueryRowContext(ctx, query, orgID).Scan(&org.OrgID, &org.Name, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("org not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve org")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return org, nil
}

// DeleteOrg deletes an organisation and, via FK cascade, everything in it.
func (mm *metadataManager) DeleteOrg(ctx context.Context, orgID pmcommon.OrgId) apperrors.Error {
	result, err := mm.conn().ExecContext(ctx, `DELETE FROM orgs WHERE org_id = $1;`, orgID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete org")
		return dberror.ErrDatabase.Err(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Ctx(ctx).Info().Str("org_id", string(orgID)).Msg("org not found")
	}
	return nil
}
