package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/dbmanager"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/postgresql"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// DB_ is an interface for the database connection. It wraps the underlying
// sql.Conn while adding the ability to manage the org scope. The manager
// interfaces are separately initialized to allow wrapping each one
// independently (e.g. for caching).

type MetadataManager interface {
	// Org
	CreateOrg(ctx context.Context, org *models.Org) apperrors.Error
	GetOrg(ctx context.Context, orgID pmcommon.OrgId) (*models.Org, apperrors.Error)
	DeleteOrg(ctx context.Context, orgID pmcommon.OrgId) apperrors.Error

	// User
	CreateUser(ctx context.Context, user *models.User) apperrors.Error
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, apperrors.Error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error)
	ListUsers(ctx context.Context, role pmcommon.Role) ([]*models.User, apperrors.Error)

	// Unit
	CreateUnit(ctx context.Context, unit *models.Unit) apperrors.Error
	GetUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, apperrors.Error)
	UpdateUnit(ctx context.Context, unit *models.Unit) apperrors.Error
	DeleteUnit(ctx context.Context, unitID uuid.UUID) apperrors.Error
	ListUnits(ctx context.Context) ([]*models.Unit, apperrors.Error)

	// Tenancy
	CreateTenancy(ctx context.Context, tenancy *models.Tenancy, checklist []models.ChecklistItem) apperrors.Error
	GetTenancy(ctx context.Context, tenancyID uuid.UUID) (*models.Tenancy, apperrors.Error)
	UpdateTenancy(ctx context.Context, tenancy *models.Tenancy) apperrors.Error
	EndTenancy(ctx context.Context, tenancyID uuid.UUID, endsOn time.Time) apperrors.Error
	ListTenancies(ctx context.Context) ([]*models.Tenancy, apperrors.Error)
	ListActiveTenancies(ctx context.Context) ([]*models.Tenancy, apperrors.Error)
	GetActiveTenancyForUser(ctx context.Context, userID uuid.UUID) (*models.Tenancy, apperrors.Error)
}

type BillingManager interface {
	// Invoice
	CreateInvoice(ctx context.Context, invoice *models.Invoice) apperrors.Error
	GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, apperrors.Error)
	ListInvoices(ctx context.Context, filter models.InvoiceFilter) ([]*models.Invoice, apperrors.Error)
	UpdateInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string, paidAt *time.Time) apperrors.Error
	ListPendingInvoicesByAmount(ctx context.Context, amount decimal.Decimal) ([]*models.InvoiceCandidate, apperrors.Error)

	// Payment intake
	CreatePaymentIntake(ctx context.Context, intake *models.PaymentIntake) apperrors.Error
	GetPaymentIntake(ctx context.Context, intakeID uuid.UUID) (*models.PaymentIntake, apperrors.Error)
	ListPaymentIntake(ctx context.Context, status string) ([]*models.PaymentIntake, apperrors.Error)
	MatchPaymentIntake(ctx context.Context, intakeID uuid.UUID, invoiceID uuid.UUID, note string) apperrors.Error
	DismissPaymentIntake(ctx context.Context, intakeID uuid.UUID, note string) apperrors.Error
}

type PortalManager interface {
	// Service requests
	CreateServiceRequest(ctx context.Context, sr *models.ServiceRequest) apperrors.Error
	GetServiceRequest(ctx context.Context, requestID uuid.UUID) (*models.ServiceRequest, apperrors.Error)
	UpdateServiceRequest(ctx context.Context, sr *models.ServiceRequest) apperrors.Error
	DeleteServiceRequest(ctx context.Context, requestID uuid.UUID) apperrors.Error
	ListServiceRequests(ctx context.Context, filter models.RequestFilter) ([]*models.ServiceRequest, apperrors.Error)

	// Checklist
	ListChecklistItems(ctx context.Context, tenancyID uuid.UUID, phase string) ([]*models.ChecklistItem, apperrors.Error)
	GetChecklistItem(ctx context.Context, itemID uuid.UUID) (*models.ChecklistItem, apperrors.Error)
	SetChecklistItemCompleted(ctx context.Context, itemID uuid.UUID, completed bool, completedAt *time.Time) apperrors.Error

	// Insurance
	CreateInsuranceRecord(ctx context.Context, rec *models.InsuranceRecord) apperrors.Error
	GetInsuranceRecord(ctx context.Context, insuranceID uuid.UUID) (*models.InsuranceRecord, apperrors.Error)
	ListInsuranceRecords(ctx context.Context, tenancyID uuid.UUID) ([]*models.InsuranceRecord, apperrors.Error)
	ReviewInsuranceRecord(ctx context.Context, insuranceID uuid.UUID, status string, reviewedAt time.Time) apperrors.Error

	// Calendar
	CreateCalendarEvent(ctx context.Context, event *models.CalendarEvent) apperrors.Error
	GetCalendarEvent(ctx context.Context, eventID uuid.UUID) (*models.CalendarEvent, apperrors.Error)
	UpdateCalendarEvent(ctx context.Context, event *models.CalendarEvent) apperrors.Error
	DeleteCalendarEvent(ctx context.Context, eventID uuid.UUID) apperrors.Error
	ListCalendarEvents(ctx context.Context, from, to time.Time) ([]*models.CalendarEvent, apperrors.Error)

	// Notifications
	CreateEmailNotification(ctx context.Context, n *models.EmailNotification) apperrors.Error
	ListEmailNotifications(ctx context.Context, limit int) ([]*models.EmailNotification, apperrors.Error)
}

type ConnectionManager interface {
	// Scope Management
	AddScopes(ctx context.Context, scopes map[string]string)
	DropScopes(ctx context.Context, scopes []string) error
	AddScope(ctx context.Context, scope, value string)
	DropScope(ctx context.Context, scope string) error
	DropAllScopes(ctx context.Context) error

	// Close the connection to the database.
	Close(ctx context.Context)
}

type DB_ interface {
	MetadataManager
	BillingManager
	PortalManager
	ConnectionManager
}

const (
	Scope_OrgId string = "casahub.curr_orgid"
)

var configuredScopes = []string{
	Scope_OrgId,
}

var (
	pool     dbmanager.ScopedDb
	poolOnce sync.Once
)

// getPool creates the scoped pool on first use. Lazy init keeps packages
// that import db testable without a running database.
func getPool(ctx context.Context) dbmanager.ScopedDb {
	poolOnce.Do(func() {
		pool = dbmanager.NewScopedDb(ctx, "postgresql", configuredScopes)
	})
	return pool
}

func Conn(ctx context.Context) dbmanager.ScopedConn {
	if p := getPool(ctx); p != nil {
		conn, err := p.Conn(ctx)
		if err == nil {
			return conn
		}
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
	}
	return nil
}

type ctxDbKeyType string

const ctxDbKey ctxDbKeyType = "CasaHubPortalDb"

// ConnCtx attaches a scoped db connection to the context. Callers own the
// connection and must Close it via DB(ctx).Close.
func ConnCtx(ctx context.Context) context.Context {
	conn := Conn(ctx)
	return context.WithValue(ctx, ctxDbKey, conn)
}

type portalDb struct {
	MetadataManager
	BillingManager
	PortalManager
	ConnectionManager
}

func DB(ctx context.Context) DB_ {
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.ScopedConn); ok && conn != nil {
		mm, bm, pm, cm := postgresql.NewPortalDb(conn)
		return &portalDb{
			MetadataManager:   mm,
			BillingManager:    bm,
			PortalManager:     pm,
			ConnectionManager: cm,
		}
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
