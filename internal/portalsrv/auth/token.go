package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "casahub_session"

// SessionClaims is what the portal stores in a session token.
type SessionClaims struct {
	UserID uuid.UUID
	Email  string
	Role   pmcommon.Role
	OrgID  pmcommon.OrgId
	Expiry time.Time
}

// CreateSessionToken signs a session token for the user with the configured
// validity.
func CreateSessionToken(ctx context.Context, uc *pmcommon.UserContext, orgID pmcommon.OrgId) (string, time.Time, apperrors.Error) {
	validity, err := config.ParseTokenDuration(config.Config().SessionValidity)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("invalid session validity in config")
		return "", time.Time{}, ErrUnableToGenerateToken.Err(err)
	}
	now := time.Now()
	expiry := now.Add(validity)

	claims := jwt.MapClaims{
		"sub":   uc.UserID.String(),
		"email": uc.Email,
		"role":  string(uc.Role),
		"org":   string(orgID),
		"iat":   now.Unix(),
		"exp":   expiry.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Config().SessionSigningKey))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to sign session token")
		return "", time.Time{}, ErrUnableToGenerateToken.Err(err)
	}
	return signed, expiry, nil
}

// ParseSessionToken validates a session token string and returns its claims.
func ParseSessionToken(ctx context.Context, tokenString string) (*SessionClaims, apperrors.Error) {
	token, parseErr := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.Config().SessionSigningKey), nil
	})
	if parseErr != nil {
		log.Ctx(ctx).Debug().Err(parseErr).Msg("failed to parse session token")
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	roleStr, ok := claims["role"].(string)
	if !ok || !pmcommon.Role(roleStr).Valid() {
		return nil, ErrInvalidToken
	}
	org, ok := claims["org"].(string)
	if !ok || org == "" {
		return nil, ErrInvalidToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	expiry := time.Unix(int64(exp), 0)
	if expiry.Before(time.Now()) {
		return nil, ErrInvalidToken
	}

	return &SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   pmcommon.Role(roleStr),
		OrgID:  pmcommon.OrgId(org),
		Expiry: expiry,
	}, nil
}
