package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	uc := &pmcommon.UserContext{
		UserID: uuid.New(),
		Email:  "tenant@example.com",
		Role:   pmcommon.RoleTenant,
	}

	token, expiry, err := CreateSessionToken(ctx, uc, "ORGDEFLT")
	require.Nil(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiry.After(time.Now()))

	claims, err := ParseSessionToken(ctx, token)
	require.Nil(t, err)
	assert.Equal(t, uc.UserID, claims.UserID)
	assert.Equal(t, uc.Email, claims.Email)
	assert.Equal(t, pmcommon.RoleTenant, claims.Role)
	assert.Equal(t, pmcommon.OrgId("ORGDEFLT"), claims.OrgID)
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()

	_, err := ParseSessionToken(ctx, "not-a-token")
	assert.NotNil(t, err)

	_, err = ParseSessionToken(ctx, "")
	assert.NotNil(t, err)
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "tenant@example.com",
		"role":  "tenant",
		"org":   "ORGDEFLT",
		"iat":   now.Add(-2 * time.Hour).Unix(),
		"exp":   now.Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, signErr := token.SignedString([]byte(config.Config().SessionSigningKey))
	require.NoError(t, signErr)

	_, err := ParseSessionToken(ctx, signed)
	assert.NotNil(t, err)
}

func TestParseSessionTokenRejectsWrongKey(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "tenant@example.com",
		"role":  "tenant",
		"org":   "ORGDEFLT",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, signErr := token.SignedString([]byte("some-other-signing-key"))
	require.NoError(t, signErr)

	_, err := ParseSessionToken(ctx, signed)
	assert.NotNil(t, err)
}

func TestParseSessionTokenRejectsBadRole(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "tenant@example.com",
		"role":  "superuser",
		"org":   "ORGDEFLT",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, signErr := token.SignedString([]byte(config.Config().SessionSigningKey))
	require.NoError(t, signErr)

	_, err := ParseSessionToken(ctx, signed)
	assert.NotNil(t, err)
}
