package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/shopspring/decimal"
)

/*
     Column      |          Type           | Collation | Nullable |      Default
-----------------+-------------------------+-----------+----------+--------------------
 intake_id       | uuid                    |           | not null | uuid_generate_v4()
 org_id          | character varying(10)   |           | not null |
 reference       | character varying(16)   |           | not null |
 sender_name     | character varying(128)  |           |          |
 sender_email    | character varying(256)  |           |          |
 amount          | numeric(12,2)           |           | not null |
 received_at     | timestamptz             |           | not null |
 raw             | jsonb                   |           | not null |
 status          | character varying(16)   |           | not null | 'needs_review'
 invoice_id      | uuid                    |           |          |
 matched_at      | timestamptz             |           |          |
 resolution_note | character varying(512)  |           |          |

unique(reference, org_id)
*/

const (
	IntakeStatusMatched     = "matched"
	IntakeStatusNeedsReview = "needs_review"
	IntakeStatusDismissed   = "dismissed"
)

// PaymentIntake is a record of an inbound e-Transfer notification awaiting
// or having completed matching to an invoice.
type PaymentIntake struct {
	IntakeID       uuid.UUID       `db:"intake_id"`
	Reference      string          `db:"reference"`
	SenderName     string          `db:"sender_name"`
	SenderEmail    string          `db:"sender_email"`
	Amount         decimal.Decimal `db:"amount"`
	ReceivedAt     time.Time       `db:"received_at"`
	Raw            pgtype.JSONB    `db:"raw"`
	Status         string          `db:"status"`
	InvoiceID      uuid.NullUUID   `db:"invoice_id"`
	MatchedAt      *time.Time      `db:"matched_at"`
	ResolutionNote string          `db:"resolution_note"`
}
