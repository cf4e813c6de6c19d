package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// ListChecklistItems returns the checklist for a tenancy, optionally limited
// to one phase, in display order.
func (pm *portalManager) ListChecklistItems(ctx context.Context, tenancyID uuid.UUID, phase string) ([]*models.ChecklistItem, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT item_id, tenancy_id, phase, label, position, completed, completed_at
		FROM checklist_items
		WHERE tenancy_id = $1 AND org_id = $2 AND ($3 = '' OR phase = $3)
		ORDER BY phase, position;
	`
	rows, err := pm.conn().QueryContext(ctx, query, tenancyID, orgID, phase)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list checklist items")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var items []*models.ChecklistItem
	for rows.Next() {
		item := &models.ChecklistItem{}
		if err := rows.Scan(&item.ItemID, &item.TenancyID, &item.Phase, &item.Label, &item.Position,
			&item.Completed, &item.CompletedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan checklist item")
			return nil, dberror.ErrDatabase.Err(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return items, nil
}

// GetChecklistItem retrieves a single checklist item.
func (pm *portalManager) GetChecklistItem(ctx context.Context, itemID uuid.UUID) (*models.ChecklistItem, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT item_id, tenancy_id, phase, label, position, completed, completed_at
		FROM checklist_items
		WHERE item_id = $1 AND org_id = $2;
	`
	item := &models.ChecklistItem{}
	err := pm.conn().QueryRowContext(ctx, query, itemID, orgID).
		Scan(&item.ItemID, &item.TenancyID, &item.Phase, &item.Label, &item.Position, &item.Completed, &item.CompletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("checklist item not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve checklist item")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return item, nil
}

// SetChecklistItemCompleted toggles completion on an item.
func (pm *portalManager) SetChecklistItemCompleted(ctx context.Context, itemID uuid.UUID, completed bool, completedAt *time.Time) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	query := `
		UPDATE checklist_items
		SET completed = $1, completed_at = $2
		WHERE item_id = $3 AND org_id = $4
		RETURNING item_id;
	`
	var returnedID uuid.UUID
	err := pm.conn().QueryRowContext(ctx, query, completed, completedAt, itemID, orgID).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("checklist item not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update checklist item")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
