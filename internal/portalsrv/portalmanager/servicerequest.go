package portalmanager

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
	"github.com/casahub/casahub-internal/internal/portalsrv/schema"
)

type serviceRequestSchema struct {
	TenancyID   uuid.UUID `json:"tenancy_id,omitempty"`
	Title       string    `json:"title" validate:"required,max=256"`
	Description string    `json:"description" validate:"required"`
	Priority    string    `json:"priority" validate:"required,priorityValidator"`
	Photos      []string  `json:"photos,omitempty" validate:"max=10,dive,max=512"`
}

type serviceRequestUpdateSchema struct {
	Title       string   `json:"title" validate:"required,max=256"`
	Description string   `json:"description" validate:"required"`
	Priority    string   `json:"priority" validate:"required,priorityValidator"`
	Status      string   `json:"status" validate:"required,requestStatusValidator"`
	Photos      []string `json:"photos,omitempty" validate:"max=10,dive,max=512"`
}

// allowedTransitions describes the service request lifecycle. Resolved and
// cancelled are terminal.
var allowedTransitions = map[string][]string{
	models.RequestStatusOpen:       {models.RequestStatusInProgress, models.RequestStatusResolved, models.RequestStatusCancelled},
	models.RequestStatusInProgress: {models.RequestStatusResolved, models.RequestStatusCancelled},
	models.RequestStatusResolved:   {},
	models.RequestStatusCancelled:  {},
}

func statusChangeAllowed(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateServiceRequest raises a maintenance request. Tenants raise requests
// against their own tenancy; admins must name one.
func CreateServiceRequest(ctx context.Context, resourceJSON []byte) (*models.ServiceRequest, apperrors.Error) {
	srs := &serviceRequestSchema{}
	if err := json.Unmarshal(resourceJSON, srs); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := schema.ValidateStruct(srs); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}

	tenancyID := srs.TenancyID
	if pmcommon.IsAdmin(ctx) {
		if tenancyID == uuid.Nil {
			return nil, ErrValidationFailed.Msg("tenancy_id: missing required attribute")
		}
	} else {
		tenancy, err := currentTenancy(ctx)
		if err != nil {
			return nil, err
		}
		tenancyID = tenancy.TenancyID
	}

	sr := &models.ServiceRequest{
		TenancyID:   tenancyID,
		Title:       srs.Title,
		Description: srs.Description,
		Priority:    srs.Priority,
		Photos:      srs.Photos,
	}
	if err := db.DB(ctx).CreateServiceRequest(ctx, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

// GetServiceRequest retrieves a request. Tenants only their own.
func GetServiceRequest(ctx context.Context, requestID uuid.UUID) (*models.ServiceRequest, apperrors.Error) {
	sr, err := db.DB(ctx).GetServiceRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := canAccessTenancy(ctx, sr.TenancyID); err != nil {
		return nil, err
	}
	return sr, nil
}

// UpdateServiceRequest updates a request. Admin only; tenants cancel via
// status on their own requests is not supported, they contact the office.
func UpdateServiceRequest(ctx context.Context, requestID uuid.UUID, resourceJSON []byte) (*models.ServiceRequest, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	srs := &serviceRequestUpdateSchema{}
	if err := json.Unmarshal(resourceJSON, srs); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := schema.ValidateStruct(srs); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}

	sr, err := db.DB(ctx).GetServiceRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !statusChangeAllowed(sr.Status, srs.Status) {
		return nil, ErrBadStatusChange.Msg(sr.Status + " -> " + srs.Status)
	}

	sr.Title = srs.Title
	sr.Description = srs.Description
	sr.Priority = srs.Priority
	sr.Photos = srs.Photos
	if srs.Status == models.RequestStatusResolved && sr.Status != models.RequestStatusResolved {
		now := time.Now()
		sr.ResolvedAt = &now
	}
	sr.Status = srs.Status

	if err := db.DB(ctx).UpdateServiceRequest(ctx, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

// DeleteServiceRequest removes a request. Admin only.
func DeleteServiceRequest(ctx context.Context, requestID uuid.UUID) apperrors.Error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return db.DB(ctx).DeleteServiceRequest(ctx, requestID)
}

// ListServiceRequests lists requests. Admins see everything and may filter;
// tenants see only their own.
func ListServiceRequests(ctx context.Context, filter models.RequestFilter) ([]*models.ServiceRequest, apperrors.Error) {
	if !pmcommon.IsAdmin(ctx) {
		uc, err := requireUser(ctx)
		if err != nil {
			return nil, err
		}
		filter.UserID = uc.UserID
		filter.TenancyID = uuid.Nil
	}
	return db.DB(ctx).ListServiceRequests(ctx, filter)
}
