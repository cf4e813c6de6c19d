package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// CreateServiceRequest raises a maintenance request against a tenancy.
func (pm *portalManager) CreateServiceRequest(ctx context.Context, sr *models.ServiceRequest) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	requestID := sr.RequestID
	if requestID == uuid.Nil {
		requestID = uuid.New()
	}
	query := `
		INSERT INTO service_requests (request_id, org_id, tenancy_id, title, description, priority, status, photos)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING request_id;
	`
	var insertedID uuid.UUID
	err := pm.conn().QueryRowContext(ctx, query, requestID, orgID, sr.TenancyID, sr.Title, sr.Description,
		sr.Priority, models.RequestStatusOpen, pq.Array(sr.Photos)).Scan(&insertedID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch {
			case pgErr.Code == "23503" && pgErr.ConstraintName == "service_requests_tenancy_id_fkey":
				return dberror.ErrInvalidTenancy
			case pgErr.Code == "23514":
				return dberror.ErrInvalidInput.Msg("invalid service request attributes")
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("title", sr.Title).Msg("failed to insert service request")
		return dberror.ErrDatabase.Err(err)
	}
	sr.RequestID = insertedID
	sr.Status = models.RequestStatusOpen
	return nil
}

// GetServiceRequest retrieves a service request by ID.
func (pm *portalManager) GetServiceRequest(ctx context.Context, requestID uuid.UUID) (*models.ServiceRequest, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT request_id, tenancy_id, title, description, priority, status, photos, created_at, resolved_at
		FROM service_requests
		WHERE request_id = $1 AND org_id = $2;
	`
	sr := &models.ServiceRequest{}
	err := pm.conn().QueryRowContext(ctx, query, requestID, orgID).
		Scan(&sr.RequestID, &sr.TenancyID, &sr.Title, &sr.Description, &sr.Priority, &sr.Status,
			pq.Array(&sr.Photos), &sr.CreatedAt, &sr.ResolvedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("service request not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve service request")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return sr, nil
}

// UpdateServiceRequest updates the mutable fields of a request, including
// status and resolved_at.
func (pm *portalManager) UpdateServiceRequest(ctx context.Context, sr *models.ServiceRequest) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	query := `
		UPDATE service_requests
		SET title = $1, description = $2, priority = $3, status = $4, photos = $5, resolved_at = $6
		WHERE request_id = $7 AND org_id = $8
		RETURNING request_id;
	`
	var returnedID uuid.UUID
	err := pm.conn().QueryRowContext(ctx, query, sr.Title, sr.Description, sr.Priority, sr.Status,
		pq.Array(sr.Photos), sr.ResolvedAt, sr.RequestID, orgID).Scan(&returnedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("service request not found")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23514" {
			return dberror.ErrInvalidInput.Msg("invalid service request attributes")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update service request")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// DeleteServiceRequest removes a request.
func (pm *portalManager) DeleteServiceRequest(ctx context.Context, requestID uuid.UUID) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	result, err := pm.conn().ExecContext(ctx, `DELETE FROM service_requests WHERE request_id = $1 AND org_id = $2;`, requestID, orgID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete service request")
		return dberror.ErrDatabase.Err(err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Ctx(ctx).Info().Str("request_id", requestID.String()).Msg("service request not found")
	}
	return nil
}

// ListServiceRequests lists requests with optional tenancy/user/status
// filters.
func (pm *portalManager) ListServiceRequests(ctx context.Context, filter models.RequestFilter) ([]*models.ServiceRequest, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	query := `
		SELECT s.request_id, s.tenancy_id, s.title, s.description, s.priority, s.status, s.photos, s.created_at, s.resolved_at
		FROM service_requests s
		JOIN tenancies t ON t.tenancy_id = s.tenancy_id AND t.org_id = s.org_id
		WHERE s.org_id = $1
		  AND ($2::uuid IS NULL OR s.tenancy_id = $2)
		  AND ($3::uuid IS NULL OR t.user_id = $3)
		  AND ($4 = '' OR s.status = $4)
		ORDER BY s.created_at DESC;
	`
	tenancyID := uuid.NullUUID{UUID: filter.TenancyID, Valid: filter.TenancyID != uuid.Nil}
	userID := uuid.NullUUID{UUID: filter.UserID, Valid: filter.UserID != uuid.Nil}
	rows, err := pm.conn().QueryContext(ctx, query, orgID, tenancyID, userID, filter.Status)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list service requests")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var requests []*models.ServiceRequest
	for rows.Next() {
		sr := &models.ServiceRequest{}
		if err := rows.Scan(&sr.RequestID, &sr.TenancyID, &sr.Title, &sr.Description, &sr.Priority, &sr.Status,
			pq.Array(&sr.Photos), &sr.CreatedAt, &sr.ResolvedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan service request")
			return nil, dberror.ErrDatabase.Err(err)
		}
		requests = append(requests, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return requests, nil
}
