package models

import (
	"time"

	"github.com/google/uuid"
)

/*
    Column     |          Type           | Collation | Nullable |      Default
---------------+-------------------------+-----------+----------+--------------------
 insurance_id  | uuid                    |           | not null | uuid_generate_v4()
 org_id        | character varying(10)   |           | not null |
 tenancy_id    | uuid                    |           | not null |
 provider      | character varying(128)  |           | not null |
 policy_number | character varying(64)   |           | not null |
 expires_on    | date                    |           | not null |
 status        | character varying(16)   |           | not null | 'pending'
 reviewed_at   | timestamptz             |           |          |
 created_at    | timestamptz             |           | not null | now()
*/

const (
	InsuranceStatusPending  = "pending"
	InsuranceStatusApproved = "approved"
	InsuranceStatusRejected = "rejected"
)

// InsuranceRecord tracks a tenant's liability insurance policy metadata.
type InsuranceRecord struct {
	InsuranceID  uuid.UUID  `db:"insurance_id"`
	TenancyID    uuid.UUID  `db:"tenancy_id"`
	Provider     string     `db:"provider"`
	PolicyNumber string     `db:"policy_number"`
	ExpiresOn    time.Time  `db:"expires_on"`
	Status       string     `db:"status"`
	ReviewedAt   *time.Time `db:"reviewed_at"`
	CreatedAt    time.Time  `db:"created_at"`
}
