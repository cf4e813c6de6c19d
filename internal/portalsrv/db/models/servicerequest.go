package models

import (
	"time"

	"github.com/google/uuid"
)

/*
   Column    |          Type           | Collation | Nullable |      Default
-------------+-------------------------+-----------+----------+--------------------
 request_id  | uuid                    |           | not null | uuid_generate_v4()
 org_id      | character varying(10)   |           | not null |
 tenancy_id  | uuid                    |           | not null |
 title       | character varying(256)  |           | not null |
 description | text                    |           | not null |
 priority    | character varying(16)   |           | not null | 'normal'
 status      | character varying(16)   |           | not null | 'open'
 photos      | text[]                  |           |          |
 created_at  | timestamptz             |           | not null | now()
 resolved_at | timestamptz             |           |          |
*/

const (
	RequestPriorityLow    = "low"
	RequestPriorityNormal = "normal"
	RequestPriorityUrgent = "urgent"

	RequestStatusOpen       = "open"
	RequestStatusInProgress = "in_progress"
	RequestStatusResolved   = "resolved"
	RequestStatusCancelled  = "cancelled"
)

// ServiceRequest is a maintenance request raised against a tenancy.
// Photos holds references into the external file store, never file content.
type ServiceRequest struct {
	RequestID   uuid.UUID  `db:"request_id"`
	TenancyID   uuid.UUID  `db:"tenancy_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Priority    string     `db:"priority"`
	Status      string     `db:"status"`
	Photos      []string   `db:"photos"`
	CreatedAt   time.Time  `db:"created_at"`
	ResolvedAt  *time.Time `db:"resolved_at"`
}
