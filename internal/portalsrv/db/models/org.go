package models

import (
	"time"

	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

/*
   Column   |          Type           | Collation | Nullable | Default
------------+-------------------------+-----------+----------+---------
 org_id     | character varying(10)   |           | not null |
 name       | character varying(128)  |           | not null |
 created_at | timestamptz             |           | not null | now()
 updated_at | timestamptz             |           | not null | now()
*/

// Org model definition
type Org struct {
	OrgID     pmcommon.OrgId `db:"org_id"`
	Name      string         `db:"name"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
