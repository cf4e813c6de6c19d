package server

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/portalsrv/billing"
	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// StartScheduler runs the in-process invoice sweep on the configured cron
// schedule. Returns nil when no schedule is configured; callers should Stop
// the returned cron on shutdown.
func StartScheduler(ctx context.Context) (*cron.Cron, error) {
	spec := config.Config().InvoiceCron
	if spec == "" {
		log.Ctx(ctx).Info().Msg("invoice scheduler disabled")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		runScheduledSweep(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Ctx(ctx).Info().Str("schedule", spec).Msg("invoice scheduler started")
	return c, nil
}

// runScheduledSweep executes one sweep with a fresh scoped db connection
// bound to the default org.
func runScheduledSweep(ctx context.Context) {
	ctx = pmcommon.SetOrgIdInContext(ctx, pmcommon.OrgId(config.Config().DefaultOrgID))
	ctx = db.ConnCtx(ctx)
	conn := db.DB(ctx)
	if conn == nil {
		log.Ctx(ctx).Error().Msg("invoice sweep: unable to get db connection")
		return
	}
	defer conn.Close(context.Background())

	result, err := billing.RunInvoiceSweep(ctx, time.Now())
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("scheduled invoice sweep failed")
		return
	}
	log.Ctx(ctx).Info().
		Int("scanned", result.Scanned).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("scheduled invoice sweep complete")
}
