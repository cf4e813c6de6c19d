package pmcommon

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPasswordRoundTrip(t *testing.T) {
	h, err := HashPassword("hunter2-but-longer")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "argon2id$"))
	assert.True(t, VerifyPassword("hunter2-but-longer", h))
	assert.False(t, VerifyPassword("wrong", h))
	assert.False(t, VerifyPassword("hunter2-but-longer", "not-a-hash"))

	// hashes are salted, so two hashes of the same password differ
	h2, err := HashPassword("hunter2-but-longer")
	assert.NoError(t, err)
	assert.NotEqual(t, h, h2)
}

func TestGetUniqueId(t *testing.T) {
	inv := GetUniqueId(ID_TYPE_INVOICE)
	assert.True(t, strings.HasPrefix(inv, "INV-"))
	assert.Len(t, inv, len("INV-")+6)

	etr := GetUniqueId(ID_TYPE_INTAKE)
	assert.True(t, strings.HasPrefix(etr, "ETR-"))

	generic := GetUniqueId(ID_TYPE_GENERIC)
	assert.Len(t, generic, 6)
	// first char is always a letter
	assert.NotContains(t, "0123456789", string(generic[0]))
}

func TestContextCarriers(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, OrgId(""), OrgIdFromContext(ctx))
	assert.Nil(t, GetUserContext(ctx))
	assert.False(t, IsAdmin(ctx))

	ctx = SetOrgIdInContext(ctx, OrgId("ORGTEST1"))
	assert.Equal(t, OrgId("ORGTEST1"), OrgIdFromContext(ctx))

	ctx = SetUserContext(ctx, &UserContext{UserID: uuid.New(), Email: "a@b.c", Role: RoleAdmin})
	assert.True(t, IsAdmin(ctx))

	ctx = SetUserContext(ctx, &UserContext{UserID: uuid.New(), Email: "t@b.c", Role: RoleTenant})
	assert.False(t, IsAdmin(ctx))

	assert.False(t, TestContextFromContext(ctx))
	ctx = SetTestContext(ctx, true)
	assert.True(t, TestContextFromContext(ctx))
}
