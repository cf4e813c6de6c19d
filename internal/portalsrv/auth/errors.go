package auth

import (
	"net/http"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
)

var (
	ErrAuth apperrors.Error = apperrors.New("authentication error").SetStatusCode(http.StatusUnauthorized)

	ErrInvalidCredentials    = ErrAuth.New("invalid email or password")
	ErrUnableToGenerateToken = ErrAuth.New("unable to generate session token").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidToken          = ErrAuth.New("invalid or expired session")
	ErrMissingSession        = ErrAuth.New("missing session")
	ErrDisallowedByRole      = apperrors.New("not allowed for this role").SetStatusCode(http.StatusForbidden)
)
