package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/shopspring/decimal"
)

/*
   Column    |          Type           | Collation | Nullable |      Default
-------------+-------------------------+-----------+----------+--------------------
 unit_id     | uuid                    |           | not null | uuid_generate_v4()
 org_id      | character varying(10)   |           | not null |
 name        | character varying(128)  |           | not null |
 address     | character varying(512)  |           | not null |
 bedrooms    | integer                 |           | not null | 1
 rent_amount | numeric(12,2)           |           | not null |
 info        | jsonb                   |           |          |
 created_at  | timestamptz             |           | not null | now()
 updated_at  | timestamptz             |           | not null | now()

unique(name, org_id)
*/

// Unit model definition
type Unit struct {
	UnitID     uuid.UUID       `db:"unit_id"`
	Name       string          `db:"name"`
	Address    string          `db:"address"`
	Bedrooms   int             `db:"bedrooms"`
	RentAmount decimal.Decimal `db:"rent_amount"`
	Info       pgtype.JSONB    `db:"info"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
