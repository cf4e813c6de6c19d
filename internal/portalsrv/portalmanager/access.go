package portalmanager

import (
	"context"

	"github.com/google/uuid"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

func requireAdmin(ctx context.Context) apperrors.Error {
	if !pmcommon.IsAdmin(ctx) {
		return ErrNotAuthorized
	}
	return nil
}

func requireUser(ctx context.Context) (*pmcommon.UserContext, apperrors.Error) {
	uc := pmcommon.GetUserContext(ctx)
	if uc == nil {
		return nil, ErrNotAuthorized
	}
	return uc, nil
}

// currentTenancy resolves the caller's active tenancy. Tenant-facing
// operations use it both to default the tenancy and to fence access.
func currentTenancy(ctx context.Context) (*models.Tenancy, apperrors.Error) {
	uc, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	tenancy, err := db.DB(ctx).GetActiveTenancyForUser(ctx, uc.UserID)
	if err != nil {
		return nil, ErrNoActiveTenancy
	}
	return tenancy, nil
}

// canAccessTenancy reports whether the caller may read resources belonging
// to the given tenancy. Admins always can; tenants only their own.
func canAccessTenancy(ctx context.Context, tenancyID uuid.UUID) apperrors.Error {
	if pmcommon.IsAdmin(ctx) {
		return nil
	}
	tenancy, err := currentTenancy(ctx)
	if err != nil {
		return err
	}
	if tenancy.TenancyID != tenancyID {
		return ErrNotAuthorized
	}
	return nil
}
