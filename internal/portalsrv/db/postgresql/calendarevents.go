package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// CreateCalendarEvent schedules an event.
func (pm *portalManager) CreateCalendarEvent(ctx context.Context, event *models.CalendarEvent) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	eventID := event.EventID
	if eventID == uuid.Nil {
		eventID = uuid.New()
	}
	query := `
		INSERT INTO calendar_events (event_id, org_id, title, description, starts_at, ends_at, tenancy_id, attendees, info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING event_id;
	`
	var insertedID uuid.UUID
	err := pm.conn().QueryRowContext(ctx, query, eventID, orgID, event.Title, event.Description,
		event.StartsAt, event.EndsAt, event.TenancyID, pq.Array(event.Attendees), event.Info).Scan(&insertedID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch {
			case pgErr.Code == "23503" && pgErr.ConstraintName == "calendar_events_tenancy_id_fkey":
				return dberror.ErrInvalidTenancy
			case pgErr.Code == "23514":
				return dberror.ErrInvalidInput.Msg("invalid event attributes")
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("title", event.Title).Msg("failed to insert calendar event")
		return dberror.ErrDatabase.Err(err)
	}
	event.EventID = insertedID
	return nil
}

// GetCalendarEvent retrieves an event by ID.
func (pm *portalManager) GetCalendarEvent(ctx context.Context, eventID uuid.UUID) (*models.CalendarEvent, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT event_id, title, description, starts_at, ends_at, tenancy_id, attendees, info, created_at
		FROM calendar_events
		WHERE event_id = $1 AND org_id = $2;
	`
	event := &models.CalendarEvent{}
	err := pm.conn().QueryRowContext(ctx, query, eventID, orgID).
		Scan(&event.EventID, &event.Title, &event.Description, &event.StartsAt, &event.EndsAt,
			&event.TenancyID, pq.Array(&event.Attendees), &event.Info, &event.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("event not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve calendar event")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return event, nil
}

// UpdateCalendarEvent replaces the mutable fields of an event.
func (pm *portalManager) UpdateCalendarEvent(ctx context.Context, event *models.CalendarEvent) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	query := `
		UPDATE calendar_events
		SET title = $1, description = $2, starts_at = $3, ends_at = $4, tenancy_id = $5, attendees = $6, info = $7
		WHERE event_id = $8 AND org_id = $9
		RETURNING event_id;
	`
	var returnedID uuid.UUID
	err := pm.conn().QueryRowContext(ctx, query, event.Title, event.Description, event.StartsAt, event.EndsAt,
		event.TenancyID, pq.Array(event.Attendees), event.Info, event.EventID, orgID).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("event not found")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23514" {
			return dberror.ErrInvalidInput.Msg("invalid event attributes")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update calendar event")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// DeleteCalendarEvent removes an event.
func (pm *portalManager) DeleteCalendarEvent(ctx context.Context, eventID uuid.UUID) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	result, err := pm.conn().ExecContext(ctx, `DELETE FROM calendar_events WHERE event_id = $1 AND org_id = $2;`, eventID, orgID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete calendar event")
		return dberror.ErrDatabase.Err(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Ctx(ctx).Info().Str("event_id", eventID.String()).Msg("event not found")
	}
	return nil
}

// ListCalendarEvents returns events overlapping the [from, to) window.
func (pm *portalManager) ListCalendarEvents(ctx context.Context, from, to time.Time) ([]*models.CalendarEvent, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT event_id, title, description, starts_at, ends_at, tenancy_id, attendees, info, created_at
		FROM calendar_events
		WHERE org_id = $1 AND starts_at < $3 AND ends_at > $2
		ORDER BY starts_at;
	`
	rows, err := pm.conn().QueryContext(ctx, query, orgID, from, to)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list calendar events")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var events []*models.CalendarEvent
	for rows.Next() {
		event := &models.CalendarEvent{}
		if err := rows.Scan(&event.EventID, &event.Title, &event.Description, &event.StartsAt, &event.EndsAt,
			&event.TenancyID, pq.Array(&event.Attendees), &event.Info, &event.CreatedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan calendar event")
			return nil, dberror.ErrDatabase.Err(err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return events, nil
}
