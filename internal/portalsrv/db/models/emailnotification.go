package models

import (
	"time"

	"github.com/google/uuid"
)

/*
     Column      |          Type           | Collation | Nullable |      Default
-----------------+-------------------------+-----------+----------+--------------------
 notification_id | uuid                    |           | not null | uuid_generate_v4()
 org_id          | character varying(10)   |           | not null |
 recipient       | character varying(256)  |           | not null |
 subject         | character varying(256)  |           | not null |
 body            | text                    |           | not null |
 status          | character varying(16)   |           | not null |
 send_error      | character varying(512)  |           |          |
 created_at      | timestamptz             |           | not null | now()
*/

const (
	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

// EmailNotification records a single best-effort send attempt. Failed sends
// are logged, never retried.
type EmailNotification struct {
	NotificationID uuid.UUID `db:"notification_id"`
	Recipient      string    `db:"recipient"`
	Subject        string    `db:"subject"`
	Body           string    `db:"body"`
	Status         string    `db:"status"`
	SendError      string    `db:"send_error"`
	CreatedAt      time.Time `db:"created_at"`
}
