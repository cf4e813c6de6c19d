package portalmanager

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/schema"
)

// ListChecklist returns the checklist for a tenancy, optionally limited to
// one phase. Tenants only their own tenancy.
func ListChecklist(ctx context.Context, tenancyID uuid.UUID, phase string) ([]*models.ChecklistItem, apperrors.Error) {
	if phase != "" {
		if err := schema.V().Var(phase, "phaseValidator"); err != nil {
			return nil, ErrValidationFailed.Msg("phase: invalid value")
		}
	}
	if err := canAccessTenancy(ctx, tenancyID); err != nil {
		return nil, err
	}
	return db.DB(ctx).ListChecklistItems(ctx, tenancyID, phase)
}

// SetChecklistItemCompleted toggles completion on an item. Tenants may only
// touch items of their own tenancy.
func SetChecklistItemCompleted(ctx context.Context, itemID uuid.UUID, completed bool) (*models.ChecklistItem, apperrors.Error) {
	item, err := db.DB(ctx).GetChecklistItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := canAccessTenancy(ctx, item.TenancyID); err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}
	if err := db.DB(ctx).SetChecklistItemCompleted(ctx, itemID, completed, completedAt); err != nil {
		return nil, err
	}
	item.Completed = completed
	item.CompletedAt = completedAt
	return item, nil
}
