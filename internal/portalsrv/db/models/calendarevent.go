package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
)

/*
   Column    |          Type           | Collation | Nullable |      Default
-------------+-------------------------+-----------+----------+--------------------
 event_id    | uuid                    |           | not null | uuid_generate_v4()
 org_id      | character varying(10)   |           | not null |
 title       | character varying(256)  |           | not null |
 description | text                    |           |          |
 starts_at   | timestamptz             |           | not null |
 ends_at     | timestamptz             |           | not null |
 tenancy_id  | uuid                    |           |          |
 attendees   | text[]                  |           |          |
 info        | jsonb                   |           |          |
 created_at  | timestamptz             |           | not null | now()
*/

// CalendarEvent is a scheduled event, optionally tied to a tenancy
// (viewings, inspections, contractor visits).
type CalendarEvent struct {
	EventID     uuid.UUID     `db:"event_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	StartsAt    time.Time     `db:"starts_at"`
	EndsAt      time.Time     `db:"ends_at"`
	TenancyID   uuid.NullUUID `db:"tenancy_id"`
	Attendees   []string      `db:"attendees"`
	Info        pgtype.JSONB  `db:"info"`
	CreatedAt   time.Time     `db:"created_at"`
}
