// Package auth implements cookie-based session authentication for the
// portal: login against stored argon2id hashes, signed session tokens, and
// the middleware that loads the user and org scope per request.
package auth

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// Login verifies credentials against the user table and returns the user
// context on success. The caller is responsible for issuing the session
// token.
func Login(ctx context.Context, email, password string) (*pmcommon.UserContext, apperrors.Error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := db.DB(ctx).GetUserByEmail(ctx, email)
	if err != nil {
		// same error for unknown user and bad password
		log.Ctx(ctx).Info().Str("email", email).Msg("login failed: user lookup")
		return nil, ErrInvalidCredentials
	}
	if !pmcommon.VerifyPassword(password, user.PasswordHash) {
		log.Ctx(ctx).Info().Str("email", email).Msg("login failed: password mismatch")
		return nil, ErrInvalidCredentials
	}
	return &pmcommon.UserContext{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
