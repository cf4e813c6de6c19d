package postgresql

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dberror"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// CreateEmailNotification records a send attempt.
func (pm *portalManager) CreateEmailNotification(ctx context.Context, n *models.EmailNotification) apperrors.Error {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return dberror.ErrMissingOrgID
	}
	notificationID := n.NotificationID
	if notificationID == uuid.Nil {
		notificationID = uuid.New()
	}
	query := `
		INSERT INTO email_notifications (notification_id, org_id, recipient, subject, body, status, send_error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING notification_id;
	`
	var insertedID uuid.UUID
	err := pm.conn().QueryRowContext(ctx, query, notificationID, orgID, n.Recipient, n.Subject,
		n.Body, n.Status, n.SendError).Scan(&insertedID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("recipient", n.Recipient).Msg("failed to insert email notification")
		return dberror.ErrDatabase.Err(err)
	}
	n.NotificationID = insertedID
	return nil
}

// ListEmailNotifications returns the most recent send attempts.
func (pm *portalManager) ListEmailNotifications(ctx context.Context, limit int) ([]*models.EmailNotification, apperrors.Error) {
	orgID := pmcommon.OrgIdFromContext(ctx)
	if orgID == "" {
		return nil, dberror.ErrMissingOrgID
	}
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT notification_id, recipient, subject, body, status, send_error, created_at
		FROM email_notifications
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := pm.conn().QueryContext(ctx, query, orgID, limit)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list email notifications")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var notifications []*models.EmailNotification
	for rows.Next() {
		n := &models.EmailNotification{}
		if err := rows.Scan(&n.NotificationID, &n.Recipient, &n.Subject, &n.Body, &n.Status, &n.SendError, &n.CreatedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan email notification")
			return nil, dberror.ErrDatabase.Err(err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return notifications, nil
}
