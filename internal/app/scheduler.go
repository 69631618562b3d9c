package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// refreshTimeout bounds a single scheduled refresh run.
const refreshTimeout = 5 * time.Minute

// StartScheduler starts the background market data refresh when enabled.
func (a *App) StartScheduler() error {
	if !a.Config.Refresh.Enabled {
		a.Logger.Info().Msg("Background refresh disabled")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(a.Config.Refresh.Cron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if err := a.MarketService.RefreshMarketData(ctx, false); err != nil {
			a.Logger.Warn().Err(err).Msg("Scheduled market refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule '%s': %w", a.Config.Refresh.Cron, err)
	}

	c.Start()
	a.scheduler = c

	a.Logger.Info().Str("schedule", a.Config.Refresh.Cron).Msg("Background refresh scheduled")
	return nil
}

// StopScheduler stops the background refresh, waiting for a running job.
func (a *App) StopScheduler() {
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
		a.scheduler = nil
	}
}
