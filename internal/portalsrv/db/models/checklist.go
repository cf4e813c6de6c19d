package models

import (
	"time"

	"github.com/google/uuid"
)

/*
    Column    |          Type           | Collation | Nullable |      Default
--------------+-------------------------+-----------+----------+--------------------
 item_id      | uuid                    |           | not null | uuid_generate_v4()
 org_id       | character varying(10)   |           | not null |
 tenancy_id   | uuid                    |           | not null |
 phase        | character varying(16)   |           | not null |
 label        | character varying(256)  |           | not null |
 position     | integer                 |           | not null |
 completed    | boolean                 |           | not null | false
 completed_at | timestamptz             |           |          |
*/

const (
	ChecklistPhaseMoveIn  = "move_in"
	ChecklistPhaseMoveOut = "move_out"
)

// ChecklistItem is a single move-in/move-out task tracked per tenancy.
type ChecklistItem struct {
	ItemID      uuid.UUID  `db:"item_id"`
	TenancyID   uuid.UUID  `db:"tenancy_id"`
	Phase       string     `db:"phase"`
	Label       string     `db:"label"`
	Position    int        `db:"position"`
	Completed   bool       `db:"completed"`
	CompletedAt *time.Time `db:"completed_at"`
}
