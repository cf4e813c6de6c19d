package portalmanager

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
	"github.com/casahub/casahub-internal/internal/portalsrv/schema"
)

type insuranceSchema struct {
	TenancyID    uuid.UUID `json:"tenancy_id,omitempty"`
	Provider     string    `json:"provider" validate:"required,max=128"`
	PolicyNumber string    `json:"policy_number" validate:"required,max=64"`
	ExpiresOn    string    `json:"expires_on" validate:"required,datetime=2006-01-02"`
}

type insuranceReviewSchema struct {
	Decision string `json:"decision" validate:"required,insuranceDecisionValidator"`
}

// FileInsurance records a policy for review. Tenants file against their own
// tenancy; admins must name one.
func FileInsurance(ctx context.Context, resourceJSON []byte) (*models.InsuranceRecord, apperrors.Error) {
	is := &insuranceSchema{}
	if err := json.Unmarshal(resourceJSON, is); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := schema.ValidateStruct(is); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}

	expiresOn, perr := time.Parse("2006-01-02", is.ExpiresOn)
	if perr != nil {
		return nil, ErrInvalidSchema.Msg("invalid expires_on date")
	}
	if expiresOn.Before(time.Now()) {
		return nil, ErrValidationFailed.Msg("expires_on: policy already expired")
	}

	tenancyID := is.TenancyID
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

	rec := &models.InsuranceRecord{
		TenancyID:    tenancyID,
		Provider:     is.Provider,
		PolicyNumber: is.PolicyNumber,
		ExpiresOn:    expiresOn,
	}
	if err := db.DB(ctx).CreateInsuranceRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetInsurance retrieves a record. Tenants only their own.
func GetInsurance(ctx context.Context, insuranceID uuid.UUID) (*models.InsuranceRecord, apperrors.Error) {
	rec, err := db.DB(ctx).GetInsuranceRecord(ctx, insuranceID)
	if err != nil {
		return nil, err
	}
	if err := canAccessTenancy(ctx, rec.TenancyID); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListInsurance lists records. Admins see everything or one tenancy;
// tenants see only their own tenancy.
func ListInsurance(ctx context.Context, tenancyID uuid.UUID) ([]*models.InsuranceRecord, apperrors.Error) {
	if !pmcommon.IsAdmin(ctx) {
		tenancy, err := currentTenancy(ctx)
		if err != nil {
			return nil, err
		}
		tenancyID = tenancy.TenancyID
	}
	return db.DB(ctx).ListInsuranceRecords(ctx, tenancyID)
}

// ReviewInsurance approves or rejects a pending record. Admin only.
// Reviewing twice returns a conflict.
func ReviewInsurance(ctx context.Context, insuranceID uuid.UUID, resourceJSON []byte) (*models.InsuranceRecord, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	rs := &insuranceReviewSchema{}
	if err := json.Unmarshal(resourceJSON, rs); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := schema.ValidateStruct(rs); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}

	if err := db.DB(ctx).ReviewInsuranceRecord(ctx, insuranceID, rs.Decision, time.Now()); err != nil {
		if err.StatusCode() == http.StatusConflict {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return db.DB(ctx).GetInsuranceRecord(ctx, insuranceID)
}
