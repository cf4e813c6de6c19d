package billing

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/notify"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// SweepResult summarizes one invoice sweep run.
type SweepResult struct {
	Scanned int `json:"scanned"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// RunInvoiceSweep creates the upcoming rent invoice for every active tenancy
// whose next due date falls inside the lead window. Safe to re-run: already
// created periods are skipped via the uniqueness constraint.
func RunInvoiceSweep(ctx context.Context, now time.Time) (*SweepResult, apperrors.Error) {
	leadDays := config.Config().InvoiceLeadDays
	result := &SweepResult{}

	tenancies, err := db.DB(ctx).ListActiveTenancies(ctx)
	if err != nil {
		return nil, err
	}

	for _, tenancy := range tenancies {
		result.Scanned++

		periodStart := nextPeriodStart(now, tenancy.RentDueDay)
		if !shouldInvoice(now, tenancy, periodStart, leadDays) {
			result.Skipped++
			continue
		}

		start, end, dueOn := periodFor(periodStart)
		invoice := &models.Invoice{
			TenancyID:   tenancy.TenancyID,
			UnitID:      tenancy.UnitID,
			Number:      pmcommon.GetUniqueId(pmcommon.ID_TYPE_INVOICE),
			PeriodStart: start,
			PeriodEnd:   end,
			DueOn:       dueOn,
			Amount:      tenancy.RentAmount,
		}
		if err := db.DB(ctx).CreateInvoice(ctx, invoice); err != nil {
			if err.StatusCode() == http.StatusConflict {
				result.Skipped++
				continue
			}
			log.Ctx(ctx).Error().Err(err).Str("tenancy_id", tenancy.TenancyID.String()).Msg("failed to create invoice")
			return result, err
		}
		result.Created++
		log.Ctx(ctx).Info().
			Str("tenancy_id", tenancy.TenancyID.String()).
			Str("number", invoice.Number).
			Str("period_start", start.Format("2006-01-02")).
			Msg("invoice created")

		notifyInvoiceCreated(ctx, tenancy, invoice)
	}

	log.Ctx(ctx).Info().
		Int("scanned", result.Scanned).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("invoice sweep completed")
	return result, nil
}

// notifyInvoiceCreated emails the tenant about the new invoice. Best effort;
// a failed send never fails the sweep.
func notifyInvoiceCreated(ctx context.Context, tenancy *models.Tenancy, invoice *models.Invoice) {
	user, err := db.DB(ctx).GetUser(ctx, tenancy.UserID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("unable to resolve tenant for invoice notification")
		return
	}
	subject := fmt.Sprintf("Rent invoice %s", invoice.Number)
	body := fmt.Sprintf("Your rent invoice %s for %s in the amount of %s is due on %s.",
		invoice.Number,
		invoice.PeriodStart.Format("January 2006"),
		invoice.Amount.StringFixed(2),
		invoice.DueOn.Format("2006-01-02"))
	notify.Send(ctx, user.Email, subject, body)
}
