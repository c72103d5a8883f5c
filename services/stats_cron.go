package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartStatsCron warms the stats cache at startup and then every ten
// minutes. The caller stops the returned scheduler on shutdown.
func StartStatsCron(stats *StatsService, logger *zap.Logger) *cron.Cron {
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := stats.Refresh(ctx); err != nil {
			logger.Error("[STATS CRON] refresh failed", zap.Error(err))
			return
		}
		logger.Debug("[STATS CRON] stats cache refreshed")
	}

	go refresh()

	c := cron.New()
	_, _ = c.AddFunc("@every 10m", refresh)
	c.Start()
	logger.Info("[STATS CRON] Scheduler started. Stats cache will refresh every 10 minutes")
	return c
}
