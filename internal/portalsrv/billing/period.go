// Package billing implements rent invoice generation. The sweep walks the
// active tenancies and creates the upcoming period's invoice once the run
// date falls inside the lead window; the unique (tenancy, period start)
// constraint makes re-runs harmless.
package billing

import (
	"time"

	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
)

// maxDueDay caps the rent due day so the anchor exists in every month.
const maxDueDay = 28

// clampDueDay normalizes a stored due day into the 1..28 range.
func clampDueDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > maxDueDay {
		return maxDueDay
	}
	return day
}

// nextPeriodStart returns the first rent due date on or after the given
// time, anchored on the tenancy's due day.
func nextPeriodStart(now time.Time, dueDay int) time.Time {
	dueDay = clampDueDay(dueDay)
	candidate := time.Date(now.Year(), now.Month(), dueDay, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = candidate.AddDate(0, 1, 0)
	}
	return candidate
}

// periodFor computes the invoice period starting at the given due date. The
// period covers one calendar month; the invoice is due on the period start.
func periodFor(periodStart time.Time) (start, end, dueOn time.Time) {
	start = periodStart
	end = periodStart.AddDate(0, 1, 0)
	dueOn = periodStart
	return start, end, dueOn
}

// shouldInvoice reports whether the sweep running at now should create the
// invoice for periodStart: the period must begin within leadDays and the
// tenancy must cover the period start.
func shouldInvoice(now time.Time, tenancy *models.Tenancy, periodStart time.Time, leadDays int) bool {
	if tenancy.Status != models.TenancyStatusActive {
		return false
	}
	if periodStart.Before(startOfDay(tenancy.StartsOn)) {
		return false
	}
	if tenancy.EndsOn != nil && periodStart.After(startOfDay(*tenancy.EndsOn)) {
		return false
	}
	windowEnd := startOfDay(now).AddDate(0, 0, leadDays)
	return !periodStart.After(windowEnd)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
