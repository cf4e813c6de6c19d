package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

/*
    Column     |          Type           | Collation | Nullable |      Default
---------------+-------------------------+-----------+----------+--------------------
 user_id       | uuid                    |           | not null | uuid_generate_v4()
 org_id        | character varying(10)   |           | not null |
 email         | character varying(256)  |           | not null |
 password_hash | character varying(256)  |           | not null |
 full_name     | character varying(128)  |           | not null |
 role          | character varying(16)   |           | not null |
 created_at    | timestamptz             |           | not null | now()
 updated_at    | timestamptz             |           | not null | now()

unique(email, org_id)
*/

// User model definition
type User struct {
	UserID       uuid.UUID     `db:"user_id"`
	Email        string        `db:"email"`
	PasswordHash string        `db:"password_hash"`
	FullName     string        `db:"full_name"`
	Role         pmcommon.Role `db:"role"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}
