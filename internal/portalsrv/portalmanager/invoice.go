package portalmanager

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
	"github.com/casahub/casahub-internal/internal/portalsrv/schema"
)

type invoiceSchema struct {
	TenancyID   uuid.UUID       `json:"tenancy_id" validate:"required"`
	PeriodStart string          `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string          `json:"period_end" validate:"required,datetime=2006-01-02"`
	DueOn       string          `json:"due_on" validate:"required,datetime=2006-01-02"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

func (is *invoiceSchema) Validate() schema.ValidationErrors {
	ves := schema.ValidateStruct(is)
	if is.Amount.IsNegative() || is.Amount.IsZero() {
		ves = append(ves, schema.ErrInvalidFieldValue("amount"))
	}
	return ves
}

// CreateInvoice creates a one-off invoice outside the monthly sweep. Admin
// only.
func CreateInvoice(ctx context.Context, resourceJSON []byte) (*models.Invoice, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	is := &invoiceSchema{}
	if err := json.Unmarshal(resourceJSON, is); err != nil {
		return nil, ErrInvalidSchema.Err(err)
	}
	if ves := is.Validate(); ves != nil {
		return nil, ErrValidationFailed.Msg(ves.Error())
	}

	periodStart, _ := time.Parse("2006-01-02", is.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", is.PeriodEnd)
	dueOn, _ := time.Parse("2006-01-02", is.DueOn)
	if !periodEnd.After(periodStart) {
		return nil, ErrValidationFailed.Msg("period_end: must be after period_start")
	}

	tenancy, err := db.DB(ctx).GetTenancy(ctx, is.TenancyID)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		TenancyID:   tenancy.TenancyID,
		UnitID:      tenancy.UnitID,
		Number:      pmcommon.GetUniqueId(pmcommon.ID_TYPE_INVOICE),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		DueOn:       dueOn,
		Amount:      is.Amount,
	}
	if err := db.DB(ctx).CreateInvoice(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice. Tenants may only read invoices of their
// own tenancy.
func GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, apperrors.Error) {
	invoice, err := db.DB(ctx).GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := canAccessTenancy(ctx, invoice.TenancyID); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices lists invoices. Admins see everything and may filter;
// tenants see only their own.
func ListInvoices(ctx context.Context, filter models.InvoiceFilter) ([]*models.Invoice, apperrors.Error) {
	if !pmcommon.IsAdmin(ctx) {
		uc, err := requireUser(ctx)
		if err != nil {
			return nil, err
		}
		filter.UserID = uc.UserID
		filter.TenancyID = uuid.Nil
	}
	return db.DB(ctx).ListInvoices(ctx, filter)
}

// MarkInvoicePaid settles a pending invoice manually. Admin only.
func MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	if err := db.DB(ctx).UpdateInvoiceStatus(ctx, invoiceID, models.InvoiceStatusPaid, &now); err != nil {
		if err.StatusCode() == http.StatusConflict {
			return nil, ErrInvoiceAlreadyPaid
		}
		return nil, err
	}
	return db.DB(ctx).GetInvoice(ctx, invoiceID)
}

// VoidInvoice cancels a pending invoice. Admin only.
func VoidInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, apperrors.Error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := db.DB(ctx).UpdateInvoiceStatus(ctx, invoiceID, models.InvoiceStatusVoid, nil); err != nil {
		if err.StatusCode() == http.StatusConflict {
			return nil, ErrInvoiceNotPending
		}
		return nil, err
	}
	return db.DB(ctx).GetInvoice(ctx, invoiceID)
}
