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

// CreateUnit creates a new unit. If a unit with the same name already exists
// for the org, the insertion is skipped and ErrAlreadyExists is returned.
func (mm *metadataManager) CreateUnit(ctx context.Context, unit *models.Unit) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	unitID := unit.UnitID
	if unitID == uuid.Nil {
		unitID = uuid.New()
	}
	query := `
		INSERT INTO units (unit_id, org_id, name, address, bedrooms, rent_amount, info)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name, org_id) DO NOTHING
		RETURNING unit_id;
	`
	var insertedID uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query, unitID, orgID, unit.Name, unit.Address, unit.Bedrooms, unit.RentAmount, unit.Info).Scan(&insertedID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("name", unit.Name).Msg("unit already exists")
			return dberror.ErrAlreadyExists.Msg("unit already exists")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23514" && pgErr.ConstraintName == "units_name_check" {
				log.Ctx(ctx).Error().Str("name", unit.Name).Msg("invalid unit name format")
				return dberror.ErrInvalidInput.Msg("invalid unit name format")
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("name", unit.Name).Msg("failed to insert unit")
		return dberror.ErrDatabase.Err(err)
	}
	unit.UnitID = insertedID
	return nil
}

// GetUnit retrieves a unit by ID.
func (mm *metadataManager) GetUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT unit_id, name, address, bedrooms, rent_amount, info, created_at, updated_at
		FROM units
		WHERE unit_id = $1 AND org_id = $2;
	`
	unit := &models.Unit{}
	err := mm.conn().QueryRowContext(ctx, query, unitID, orgID).
		Scan(&unit.UnitID, &unit.Name, &unit.Address, &unit.Bedrooms, &unit.RentAmount, &unit.Info, &unit.CreatedAt, &unit.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("unit not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve unit")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return unit, nil
}

// UpdateUnit updates the mutable fields of a unit.
func (mm *metadataManager) UpdateUnit(ctx context.Context, unit *models.Unit) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	query := `
		UPDATE units
		SET name = $1, address = $2, bedrooms = $3, rent_amount = $4, info = $5, updated_at = now()
		WHERE unit_id = $6 AND org_id = $7
		RETURNING unit_id;
	`
	var returnedID uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query, unit.Name, unit.Address, unit.Bedrooms, unit.RentAmount, unit.Info, unit.UnitID, orgID).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("unit not found")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "units_name_org_id_key" {
				return dberror.ErrAlreadyExists.Msg("unit name already exists")
			}
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update unit")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// DeleteUnit deletes a unit. Tenancies referencing the unit block deletion.
func (mm *metadataManager) DeleteUnit(ctx context.Context, unitID uuid.UUID) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	result, err := mm.conn().ExecContext(ctx, `DELETE FROM units WHERE unit_id = $1 AND org_id = $2;`, unitID, orgID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidInput.Msg("unit has tenancies and cannot be deleted")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete unit")
		return dberror.ErrDatabase.Err(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Ctx(ctx).Info().Str("unit_id", unitID.String()).Msg("unit not found")
	}
	return nil
}

// ListUnits lists all units for the org.
func (mm *metadataManager) ListUnits(ctx context.Context) ([]*models.Unit, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT unit_id, name, address, bedrooms, rent_amount, info, created_at, updated_at
		FROM units
		WHERE org_id = $1
		ORDER BY name;
	`
	rows, err := mm.conn().QueryContext(ctx, query, orgID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list units")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit := &models.Unit{}
		if err := rows.Scan(&unit.UnitID, &unit.Name, &unit.Address, &unit.Bedrooms, &unit.RentAmount, &unit.Info, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan unit")
			return nil, dberror.ErrDatabase.Err(err)
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return units, nil
}
