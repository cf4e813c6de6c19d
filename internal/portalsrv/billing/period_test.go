package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClampDueDay(t *testing.T) {
	assert.Equal(t, 1, clampDueDay(0))
	assert.Equal(t, 1, clampDueDay(-5))
	assert.Equal(t, 1, clampDueDay(1))
	assert.Equal(t, 15, clampDueDay(15))
	assert.Equal(t, 28, clampDueDay(28))
	assert.Equal(t, 28, clampDueDay(31))
}

func TestNextPeriodStart(t *testing.T) {
	// before the due day in the same month
	got := nextPeriodStart(date(2026, time.August, 20), 25)
	assert.Equal(t, date(2026, time.August, 25), got)

	// on the due day itself
	got = nextPeriodStart(date(2026, time.August, 25), 25)
	assert.Equal(t, date(2026, time.August, 25), got)

	// past the due day rolls to next month
	got = nextPeriodStart(date(2026, time.August, 26), 25)
	assert.Equal(t, date(2026, time.September, 25), got)

	// December rolls into January
	got = nextPeriodStart(date(2026, time.December, 30), 1)
	assert.Equal(t, date(2027, time.January, 1), got)

	// due day 31 is clamped to 28
	got = nextPeriodStart(date(2026, time.February, 1), 31)
	assert.Equal(t, date(2026, time.February, 28), got)
}

func TestPeriodFor(t *testing.T) {
	start, end, dueOn := periodFor(date(2026, time.September, 1))
	assert.Equal(t, date(2026, time.September, 1), start)
	assert.Equal(t, date(2026, time.October, 1), end)
	assert.Equal(t, start, dueOn)

	// month-length arithmetic across January
	start, end, _ = periodFor(date(2026, time.January, 28))
	assert.Equal(t, date(2026, time.January, 28), start)
	assert.Equal(t, date(2026, time.February, 28), end)
}

func TestShouldInvoice(t *testing.T) {
	activeTenancy := func() *models.Tenancy {
		return &models.Tenancy{
			StartsOn:   date(2026, time.January, 1),
			RentDueDay: 1,
			Status:     models.TenancyStatusActive,
		}
	}

	now := date(2026, time.August, 25)

	// period starts within the lead window
	assert.True(t, shouldInvoice(now, activeTenancy(), date(2026, time.September, 1), 10))

	// period starts beyond the lead window
	assert.False(t, shouldInvoice(now, activeTenancy(), date(2026, time.September, 10), 10))

	// ended tenancy never invoices
	ended := activeTenancy()
	ended.Status = models.TenancyStatusEnded
	assert.False(t, shouldInvoice(now, ended, date(2026, time.September, 1), 10))

	// period before the tenancy started
	early := activeTenancy()
	early.StartsOn = date(2026, time.October, 1)
	assert.False(t, shouldInvoice(now, early, date(2026, time.September, 1), 10))

	// period after the tenancy ends
	ending := activeTenancy()
	endsOn := date(2026, time.August, 31)
	ending.EndsOn = &endsOn
	assert.False(t, shouldInvoice(now, ending, date(2026, time.September, 1), 10))

	// ends exactly on the period start still invoices
	endsOn = date(2026, time.September, 1)
	assert.True(t, shouldInvoice(now, ending, date(2026, time.September, 1), 10))

	// period start today is inside the window
	assert.True(t, shouldInvoice(date(2026, time.September, 1), activeTenancy(), date(2026, time.September, 1), 10))
}
