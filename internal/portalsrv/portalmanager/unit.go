// Package portalmanager implements the portal's domain operations on top of
// the db layer: units, tenancies, invoices, service requests, checklists,
// insurance and the calendar. Each operation validates its request schema,
// enforces role-based access and delegates persistence to db.DB(ctx).
package portalmanager

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/schema"
)

type unitSchema struct {
	Name       string          `json:"name" validate:"required,max=128"`
	Address    string          `json:"address" validate:"required,max=512"`
	Bedrooms   int             `json:"bedrooms" validate:"gte=0,lte=20"`
	RentAmount decimal.Decimal `json:"rent_amount" validate:"required"`
	Info       json.RawMessage `json:"info,omitempty"`
}

func (us *unitSchema) Validate() schema.ValidationErrors {
	ves := schema.ValidateStruct(us)
	if us.RentAmount.IsNegative() {
		ves = append(ves, schema.ErrInvalidFieldValue("rent_amount"))
	}
	return ves
}

func (us *unitSchema) toModel() (*models.Unit, apperrors.Error) {
	unit := &models.Unit{
		Name:       us.Name,
		Address:    us.Address,
		Bedrooms:   us.Bedrooms,
		RentAmount: us.RentAmount,
	}
	info := us.Info
	if len(info) == 0 {
		info = json.RawMessage("{}")
	}
	if err := unit.Info.Set([]byte(info)); err != nil {
		return nil, ErrInvalidSchema.Msg("invalid info document")
	}
	return unit, nil
}

// CreateUnit creates a unit from a request body. Admin only.
func CreateUnit(ctx context.Context, resourceJSON []byte) (*models.Unit, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	us := &unitSchema{}
	if err := json.Unmarshal(resourceJSON, us); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := us.Validate(); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}
	unit, err := us.toModel()
	if err != nil {
		return nil, err
	}
	if err := db.DB(ctx).CreateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// UpdateUnit replaces the mutable fields of a unit. Admin only.
func UpdateUnit(ctx context.Context, unitID uuid.UUID, resourceJSON []byte) (*models.Unit, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	us := &unitSchema{}
	if err := json.Unmarshal(resourceJSON, us); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := us.Validate(); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}
	unit, err := us.toModel()
	if err != nil {
		return nil, err
	}
	unit.UnitID = unitID
	if err := db.DB(ctx).UpdateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return db.DB(ctx).GetUnit(ctx, unitID)
}

// GetUnit retrieves a unit. Admin only; tenants see units through their
// tenancy.
func GetUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return db.DB(ctx).GetUnit(ctx, unitID)
}

// DeleteUnit deletes a unit. Admin only.
func DeleteUnit(ctx context.Context, unitID uuid.UUID) apperrors.Error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return db.DB(ctx).DeleteUnit(ctx, unitID)
}

// ListUnits lists units for the org. Admin only.
func ListUnits(ctx context.Context) ([]*models.Unit, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return db.DB(ctx).ListUnits(ctx)
}
