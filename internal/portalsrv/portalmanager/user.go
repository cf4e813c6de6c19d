package portalmanager

import (
	"context"
	"encoding/json"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
	"github.com/casahub/casahub-internal/internal/portalsrv/schema"
)

type userSchema struct {
	Email    string `json:"email" validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"required,max=128"`
	Role     string `json:"role" validate:"required,roleValidator"`
}

// CreateUser registers a portal user. Admin only.
func CreateUser(ctx context.Context, resourceJSON []byte) (*models.User, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	us := &userSchema{}
	if err := json.Unmarshal(resourceJSON, us); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := schema.ValidateStruct(us); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}

	hash, herr := pmcommon.HashPassword(us.Password)
	if herr != nil {
		return nil, ErrPortalError.Msg("unable to hash password")
	}
	user := &models.User{
		Email:        us.Email,
		PasswordHash: hash,
		FullName:     us.FullName,
		Role:         pmcommon.Role(us.Role),
	}
	if err := db.DB(ctx).CreateUser(ctx, user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ListUsers lists portal users, optionally filtered by role. Admin only.
// Password hashes are stripped from the result.
func ListUsers(ctx context.Context, role pmcommon.Role) ([]*models.User, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	users, err := db.DB(ctx).ListUsers(ctx, role)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user.PasswordHash = ""
	}
	return users, nil
}
