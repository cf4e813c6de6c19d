package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/*
    Column    |          Type           | Collation | Nullable |      Default
--------------+-------------------------+-----------+----------+--------------------
 invoice_id   | uuid                    |           | not null | uuid_generate_v4()
 org_id       | character varying(10)   |           | not null |
 tenancy_id   | uuid                    |           | not null |
 unit_id      | uuid                    |           | not null |
 number       | character varying(16)   |           | not null |
 period_start | date                    |           | not null |
 period_end   | date                    |           | not null |
 due_on       | date                    |           | not null |
 amount       | numeric(12,2)           |           | not null |
 status       | character varying(16)   |           | not null | 'pending'
 paid_at      | timestamptz             |           |          |
 created_at   | timestamptz             |           | not null | now()

unique(number, org_id)
unique(tenancy_id, period_start, org_id)  -- idempotency anchor for the sweep
*/

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusVoid    = "void"
)

// Invoice is a billing record for a unit/period.
type Invoice struct {
	InvoiceID   uuid.UUID       `db:"invoice_id"`
	TenancyID   uuid.UUID       `db:"tenancy_id"`
	UnitID      uuid.UUID       `db:"unit_id"`
	Number      string          `db:"number"`
	PeriodStart time.Time       `db:"period_start"`
	PeriodEnd   time.Time       `db:"period_end"`
	DueOn       time.Time       `db:"due_on"`
	Amount      decimal.Decimal `db:"amount"`
	Status      string          `db:"status"`
	PaidAt      *time.Time      `db:"paid_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

// InvoiceCandidate is an invoice joined with the tenant's login email, used
// by the payment reconciliation matcher.
type InvoiceCandidate struct {
	Invoice
	TenantEmail string `db:"tenant_email"`
}
