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

type calendarEventSchema struct {
	Title       string          `json:"title" validate:"required,max=256"`
	Description string          `json:"description,omitempty"`
	StartsAt    time.Time       `json:"starts_at" validate:"required"`
	EndsAt      time.Time       `json:"ends_at" validate:"required"`
	TenancyID   uuid.UUID       `json:"tenancy_id,omitempty"`
	Attendees   []string        `json:"attendees,omitempty" validate:"max=50,dive,email"`
	Info        json.RawMessage `json:"info,omitempty"`
}

func (cs *calendarEventSchema) Validate() schema.ValidationErrors {
	ves := schema.ValidateStruct(cs)
	if !cs.EndsAt.After(cs.StartsAt) {
		ves = append(ves, schema.ValidationError{Field: "ends_at", ErrStr: "must be after starts_at"})
	}
	return ves
}

func (cs *calendarEventSchema) toModel() (*models.CalendarEvent, apperrors.Error) {
	event := &models.CalendarEvent{
		Title:       cs.Title,
		Description: cs.Description,
		StartsAt:    cs.StartsAt,
		EndsAt:      cs.EndsAt,
		Attendees:   cs.Attendees,
	}
	if cs.TenancyID != uuid.Nil {
		event.TenancyID = uuid.NullUUID{UUID: cs.TenancyID, Valid: true}
	}
	info := cs.Info
	if len(info) == 0 {
		info = json.RawMessage("{}")
	}
	if err := event.Info.Set([]byte(info)); err != nil {
		return nil, ErrInvalidSchema.Msg("invalid info document")
	}
	return event, nil
}

// CreateCalendarEvent schedules an event. Admin only.
func CreateCalendarEvent(ctx context.Context, resourceJSON []byte) (*models.CalendarEvent, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	cs := &calendarEventSchema{}
	if err := json.Unmarshal(resourceJSON, cs); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := cs.Validate(); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}
	event, err := cs.toModel()
	if err != nil {
		return nil, err
	}
	if err := db.DB(ctx).CreateCalendarEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetCalendarEvent retrieves an event. Tenants may only read events tied to
// their tenancy or org-wide events.
func GetCalendarEvent(ctx context.Context, eventID uuid.UUID) (*models.CalendarEvent, apperrors.Error) {
	event, err := db.DB(ctx).GetCalendarEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !pmcommon.IsAdmin(ctx) && event.TenancyID.Valid {
		if err := canAccessTenancy(ctx, event.TenancyID.UUID); err != nil {
			return nil, err
		}
	}
	return event, nil
}

// UpdateCalendarEvent replaces an event. Admin only.
func UpdateCalendarEvent(ctx context.Context, eventID uuid.UUID, resourceJSON []byte) (*models.CalendarEvent, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	cs := &calendarEventSchema{}
	if err := json.Unmarshal(resourceJSON, cs); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := cs.Validate(); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}
	event, err := cs.toModel()
	if err != nil {
		return nil, err
	}
	event.EventID = eventID
	if err := db.DB(ctx).UpdateCalendarEvent(ctx, event); err != nil {
		return nil, err
	}
	return db.DB(ctx).GetCalendarEvent(ctx, eventID)
}

// DeleteCalendarEvent removes an event. Admin only.
func DeleteCalendarEvent(ctx context.Context, eventID uuid.UUID) apperrors.Error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return db.DB(ctx).DeleteCalendarEvent(ctx, eventID)
}

// ListCalendarEvents returns events in a time window. Tenants see org-wide
// events plus those tied to their own tenancy.
func ListCalendarEvents(ctx context.Context, from, to time.Time) ([]*models.CalendarEvent, apperrors.Error) {
	if to.IsZero() {
		to = time.Now().AddDate(0, 1, 0)
	}
	if from.IsZero() {
		from = time.Now().AddDate(0, -1, 0)
	}
	if !to.After(from) {
		return nil, ErrValidationFailed.Msg("to: must be after from")
	}
	events, err := db.DB(ctx).ListCalendarEvents(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if pmcommon.IsAdmin(ctx) {
		return events, nil
	}
	tenancy, terr := currentTenancy(ctx)
	if terr != nil {
		return nil, terr
	}
	visible := make([]*models.CalendarEvent, 0, len(events))
	for _, event := range events {
		if !event.TenancyID.Valid || event.TenancyID.UUID == tenancy.TenancyID {
			visible = append(visible, event)
		}
	}
	return visible, nil
}
