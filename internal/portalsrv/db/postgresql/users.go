package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// CreateUser creates a new user. Returns ErrAlreadyExists when the email is
// already registered for the org.
func (mm *metadataManager) CreateUser(ctx context.Context, user *models.User) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	userID := user.UserID
	if userID == uuid.Nil {
		userID = uuid.New()
	}
	query := `
		INSERT INTO users (user_id, org_id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email, org_id) DO NOTHING
		RETURNING user_id;
	`
	var insertedID uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query, userID, orgID, user.Email, user.PasswordHash, user.FullName, user.Role).Scan(&insertedID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("email", user.Email).Msg("user already exists")
			return dberror.ErrAlreadyExists.Msg("user already exists")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23514" && pgErr.ConstraintName == "users_role_check" {
				return dberror.ErrInvalidInput.Msg("invalid role")
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("email", user.Email).Msg("failed to insert user")
		return dberror.ErrDatabase.Err(err)
	}
	user.UserID = insertedID
	return nil
}

// GetUser retrieves a user by ID.
func (mm *metadataManager) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT user_id, email, password_hash, full_name, role, created_at, updated_at
		FROM users
		WHERE user_id = $1 AND org_id = $2;
	`
	row := mm.conn().QueryRowContext(ctx, query, userID, orgID)
	return scanUser(ctx, row)
}

// GetUserByEmail retrieves a user by login email.
func (mm *metadataManager) GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT user_id, email, password_hash, full_name, role, created_at, updated_at
		FROM users
		WHERE email = $1 AND org_id = $2;
	`
	row := mm.conn().QueryRowContext(ctx, query, email, orgID)
	return scanUser(ctx, row)
}

func scanUser(ctx context.Context, row *sql.Row) (*models.User, apperrors.Error) {
	user := &models.User{}
	err := row.Scan(&user.UserID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve user")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return user, nil
}

// ListUsers lists users, optionally filtered by role.
func (mm *metadataManager) ListUsers(ctx context.Context, role pmcommon.Role) ([]*models.User, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT user_id, email, password_hash, full_name, role, created_at, updated_at
		FROM users
		WHERE org_id = $1 AND ($2 = '' OR role = $2)
		ORDER BY created_at;
	`
	rows, err := mm.conn().QueryContext(ctx, query, orgID, string(role))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list users")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.UserID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan user")
			return nil, dberror.ErrDatabase.Err(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return users, nil
}
