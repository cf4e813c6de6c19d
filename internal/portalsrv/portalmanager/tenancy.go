package portalmanager

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/schema"
)

type tenancySchema struct {
	UnitID     uuid.UUID       `json:"unit_id" validate:"required"`
	UserID     uuid.UUID       `json:"user_id" validate:"required"`
	StartsOn   string          `json:"starts_on" validate:"required,datetime=2006-01-02"`
	EndsOn     string          `json:"ends_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RentAmount decimal.Decimal `json:"rent_amount" validate:"required"`
	RentDueDay int             `json:"rent_due_day" validate:"required,dueDayValidator"`
}

func (ts *tenancySchema) Validate() schema.ValidationErrors {
	ves := schema.ValidateStruct(ts)
	if ts.RentAmount.IsNegative() {
		ves = append(ves, schema.ErrInvalidFieldValue("rent_amount"))
	}
	return ves
}

type tenancyUpdateSchema struct {
	RentAmount decimal.Decimal `json:"rent_amount" validate:"required"`
	RentDueDay int             `json:"rent_due_day" validate:"required,dueDayValidator"`
	EndsOn     string          `json:"ends_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// defaultChecklist is the seed checklist every new tenancy starts with.
var defaultChecklist = []struct {
	phase string
	label string
}{
	{models.ChecklistPhaseMoveIn, "Keys and fobs handed over"},
	{models.ChecklistPhaseMoveIn, "Walkthrough inspection completed"},
	{models.ChecklistPhaseMoveIn, "Utility accounts transferred"},
	{models.ChecklistPhaseMoveIn, "Insurance proof submitted"},
	{models.ChecklistPhaseMoveOut, "Forwarding address provided"},
	{models.ChecklistPhaseMoveOut, "Unit cleaned and emptied"},
	{models.ChecklistPhaseMoveOut, "Final inspection completed"},
	{models.ChecklistPhaseMoveOut, "Keys and fobs returned"},
}

func seedChecklistItems() []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(defaultChecklist))
	positions := map[string]int{}
	for _, d := range defaultChecklist {
		positions[d.phase]++
		items = append(items, models.ChecklistItem{
			Phase:    d.phase,
			Label:    d.label,
			Position: positions[d.phase],
		})
	}
	return items
}

// CreateTenancy creates a tenancy with its seed checklist. Admin only.
func CreateTenancy(ctx context.Context, resourceJSON []byte) (*models.Tenancy, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	ts := &tenancySchema{}
	if err := json.Unmarshal(resourceJSON, ts); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := ts.Validate(); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}

	startsOn, perr := time.Parse("2006-01-02", ts.StartsOn)
	if perr != nil {
		return nil, ErrInvalidSchema.Msg("invalid starts_on date")
	}
	tenancy := &models.Tenancy{
		UnitID:     ts.UnitID,
		UserID:     ts.UserID,
		StartsOn:   startsOn,
		RentAmount: ts.RentAmount,
		RentDueDay: ts.RentDueDay,
	}
	if ts.EndsOn != "" {
		endsOn, perr := time.Parse("2006-01-02", ts.EndsOn)
		if perr != nil {
			return nil, ErrInvalidSchema.Msg("invalid ends_on date")
		}
		if !endsOn.After(startsOn) {
			return nil, ErrValidationFailed.Msg("ends_on: must be after starts_on")
		}
		tenancy.EndsOn = &endsOn
	}

	if err := db.DB(ctx).CreateTenancy(ctx, tenancy, seedChecklistItems()); err != nil {
		return nil, err
	}
	return tenancy, nil
}

// GetTenancy retrieves a tenancy. Tenants may only read their own.
func GetTenancy(ctx context.Context, tenancyID uuid.UUID) (*models.Tenancy, apperrors.Error) {
	if err := canAccessTenancy(ctx, tenancyID); err != nil {
		return nil, err
	}
	return db.DB(ctx).GetTenancy(ctx, tenancyID)
}

// GetOwnTenancy returns the caller's active tenancy.
func GetOwnTenancy(ctx context.Context) (*models.Tenancy, apperrors.Error) {
	return currentTenancy(ctx)
}

// UpdateTenancy updates rent terms. Admin only.
func UpdateTenancy(ctx context.Context, tenancyID uuid.UUID, resourceJSON []byte) (*models.Tenancy, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	ts := &tenancyUpdateSchema{}
	if err := json.Unmarshal(resourceJSON, ts); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := schema.ValidateStruct(ts); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}

	tenancy, err := db.DB(ctx).GetTenancy(ctx, tenancyID)
	if err != nil {
		return nil, err
	}
	tenancy.RentAmount = ts.RentAmount
	tenancy.RentDueDay = ts.RentDueDay
	if ts.EndsOn != "" {
		endsOn, perr := time.Parse("2006-01-02", ts.EndsOn)
		if perr != nil {
			return nil, ErrInvalidSchema.Msg("invalid ends_on date")
		}
		tenancy.EndsOn = &endsOn
	}
	if err := db.DB(ctx).UpdateTenancy(ctx, tenancy); err != nil {
		return nil, err
	}
	return tenancy, nil
}

// EndTenancy marks a tenancy ended. Admin only.
func EndTenancy(ctx context.Context, tenancyID uuid.UUID, endsOn time.Time) apperrors.Error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if endsOn.IsZero() {
		endsOn = time.Now()
	}
	return db.DB(ctx).EndTenancy(ctx, tenancyID, endsOn)
}

// ListTenancies lists tenancies for the org. Admin only.
func ListTenancies(ctx context.Context) ([]*models.Tenancy, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return db.DB(ctx).ListTenancies(ctx)
}
