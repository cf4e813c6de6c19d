package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/*
    Column    |          Type           | Collation | Nullable |      Default
--------------+-------------------------+-----------+----------+--------------------
 tenancy_id   | uuid                    |           | not null | uuid_generate_v4()
 org_id       | character varying(10)   |           | not null |
 unit_id      | uuid                    |           | not null |
 user_id      | uuid                    |           | not null |
 starts_on    | date                    |           | not null |
 ends_on      | date                    |           |          |
 rent_amount  | numeric(12,2)           |           | not null |
 rent_due_day | integer                 |           | not null | 1
 status       | character varying(16)   |           | not null | 'active'
 created_at   | timestamptz             |           | not null | now()
 updated_at   | timestamptz             |           | not null | now()

partial unique(unit_id, org_id) where status = 'active'
*/

const (
	TenancyStatusActive = "active"
	TenancyStatusEnded  = "ended"
)

// Tenancy links a tenant user to a unit for a bounded occupancy period.
type Tenancy struct {
	TenancyID  uuid.UUID       `db:"tenancy_id"`
	UnitID     uuid.UUID       `db:"unit_id"`
	UserID     uuid.UUID       `db:"user_id"`
	StartsOn   time.Time       `db:"starts_on"`
	EndsOn     *time.Time      `db:"ends_on"`
	RentAmount decimal.Decimal `db:"rent_amount"`
	RentDueDay int             `db:"rent_due_day"`
	Status     string          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
