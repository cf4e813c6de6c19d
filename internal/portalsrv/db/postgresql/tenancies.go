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

// CreateTenancy creates a tenancy and its seed checklist items in a single
// transaction. A unit can only carry one active tenancy at a time; violating
// that returns ErrAlreadyExists.
func (mm *metadataManager) CreateTenancy(ctx context.Context, tenancy *models.Tenancy, checklist []models.ChecklistItem) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	tenancyID := tenancy.TenancyID
	if tenancyID == uuid.Nil {
		tenancyID = uuid.New()
	}

	tx, err := mm.conn().BeginTx(ctx, nil)
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

	query := `
		INSERT INTO tenancies (tenancy_id, org_id, unit_id, user_id, starts_on, ends_on, rent_amount, rent_due_day, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING tenancy_id;
	`
	var insertedID uuid.UUID
	err = tx.QueryRowContext(ctx, query, tenancyID, orgID, tenancy.UnitID, tenancy.UserID,
		tenancy.StartsOn, tenancy.EndsOn, tenancy.RentAmount, tenancy.RentDueDay, models.TenancyStatusActive).Scan(&insertedID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch {
			case pgErr.Code == "23505" && pgErr.ConstraintName == "tenancies_unit_active_key":
				return dberror.ErrAlreadyExists.Msg("unit already has an active tenancy")
			case pgErr.Code == "23503" && pgErr.ConstraintName == "tenancies_unit_id_fkey":
				return dberror.ErrInvalidUnit
			case pgErr.Code == "23503" && pgErr.ConstraintName == "tenancies_user_id_fkey":
				return dberror.ErrInvalidInput.Msg("tenant user does not exist")
			case pgErr.Code == "23514":
				return dberror.ErrInvalidInput.Msg("invalid tenancy attributes")
			}
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert tenancy")
		return dberror.ErrDatabase.Err(err)
	}

	itemQuery := `
		INSERT INTO checklist_items (item_id, org_id, tenancy_id, phase, label, position)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range checklist {
		itemID := item.ItemID
		if itemID == uuid.Nil {
			itemID = uuid.New()
		}
		if _, err := tx.ExecContext(ctx, itemQuery, itemID, orgID, insertedID, item.Phase, item.Label, item.Position); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("label", item.Label).Msg("failed to insert checklist item")
			return dberror.ErrDatabase.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to commit tenancy transaction")
		return dberror.ErrDatabase.Err(err)
	}
	committed = true
	tenancy.TenancyID = insertedID
	tenancy.Status = models.TenancyStatusActive
	return nil
}

// GetTenancy retrieves a tenancy by ID.
func (mm *metadataManager) GetTenancy(ctx context.Context, tenancyID uuid.UUID) (*models.Tenancy, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT tenancy_id, unit_id, user_id, starts_on, ends_on, rent_amount, rent_due_day, status, created_at, updated_at
		FROM tenancies
		WHERE tenancy_id = $1 AND org_id = $2;
	`
	row := mm.conn().QueryRowContext(ctx, query, tenancyID, orgID)
	return scanTenancy(ctx, row)
}

// GetActiveTenancyForUser returns the tenant's current active tenancy.
func (mm *metadataManager) GetActiveTenancyForUser(ctx context.Context, userID uuid.UUID) (*models.Tenancy, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT tenancy_id, unit_id, user_id, starts_on, ends_on, rent_amount, rent_due_day, status, created_at, updated_at
		FROM tenancies
		WHERE user_id = $1 AND org_id = $2 AND status = $3
		ORDER BY starts_on DESC
		LIMIT 1;
	`
	row := mm.conn().QueryRowContext(ctx, query, userID, orgID, models.TenancyStatusActive)
	return scanTenancy(ctx, row)
}

func scanTenancy(ctx context.Context, row *sql.Row) (*models.Tenancy, apperrors.Error) {
	tenancy := &models.Tenancy{}
	err := row.Scan(&tenancy.TenancyID, &tenancy.UnitID, &tenancy.UserID, &tenancy.StartsOn, &tenancy.EndsOn,
		&tenancy.RentAmount, &tenancy.RentDueDay, &tenancy.Status, &tenancy.CreatedAt, &tenancy.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("tenancy not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve tenancy")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return tenancy, nil
}

// UpdateTenancy updates rent terms on an existing tenancy.
func (mm *metadataManager) UpdateTenancy(ctx context.Context, tenancy *models.Tenancy) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	query := `
		UPDATE tenancies
		SET rent_amount = $1, rent_due_day = $2, ends_on = $3, updated_at = now()
		WHERE tenancy_id = $4 AND org_id = $5
		RETURNING tenancy_id;
	`
	var returnedID uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query, tenancy.RentAmount, tenancy.RentDueDay, tenancy.EndsOn, tenancy.TenancyID, orgID).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("tenancy not found")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23514" {
			return dberror.ErrInvalidInput.Msg("invalid tenancy attributes")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update tenancy")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// EndTenancy marks a tenancy ended as of endsOn. Ending an already-ended
// tenancy returns ErrAlreadyExists.
func (mm *metadataManager) EndTenancy(ctx context.Context, tenancyID uuid.UUID, endsOn time.Time) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	query := `
		UPDATE tenancies
		SET status = $1, ends_on = $2, updated_at = now()
		WHERE tenancy_id = $3 AND org_id = $4 AND status = $5
		RETURNING tenancy_id;
	`
	var returnedID uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query, models.TenancyStatusEnded, endsOn, tenancyID, orgID, models.TenancyStatusActive).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			// either missing or already ended; disambiguate for the caller
			if _, gerr := mm.GetTenancy(ctx, tenancyID); gerr != nil {
				return gerr
			}
			return dberror.ErrAlreadyExists.Msg("tenancy already ended")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to end tenancy")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// ListTenancies lists all tenancies for the org.
func (mm *metadataManager) ListTenancies(ctx context.Context) ([]*models.Tenancy, apperrors.Error) {
	return mm.listTenancies(ctx, "")
}

// ListActiveTenancies lists tenancies with status 'active'. The invoice sweep
// iterates over this set.
func (mm *metadataManager) ListActiveTenancies(ctx context.Context) ([]*models.Tenancy, apperrors.Error) {
	return mm.listTenancies(ctx, models.TenancyStatusActive)
}

func (mm *metadataManager) listTenancies(ctx context.Context, status string) ([]*models.Tenancy, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT tenancy_id, unit_id, user_id, starts_on, ends_on, rent_amount, rent_due_day, status, created_at, updated_at
		FROM tenancies
		WHERE org_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY starts_on DESC;
	`
	rows, err := mm.conn().QueryContext(ctx, query, orgID, status)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list tenancies")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var tenancies []*models.Tenancy
	for rows.Next() {
		tenancy := &models.Tenancy{}
		if err := rows.Scan(&tenancy.TenancyID, &tenancy.UnitID, &tenancy.UserID, &tenancy.StartsOn, &tenancy.EndsOn,
			&tenancy.RentAmount, &tenancy.RentDueDay, &tenancy.Status, &tenancy.CreatedAt, &tenancy.UpdatedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan tenancy")
			return nil, dberror.ErrDatabase.Err(err)
		}
		tenancies = append(tenancies, tenancy)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return tenancies, nil
}
