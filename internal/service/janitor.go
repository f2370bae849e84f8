package service

import (
	"context"
	"log/slog"
	"time"
)

// Janitor reaps expired sessions periodically so abandoned attempts get
// recorded and the store does not grow without bound.
type Janitor struct {
	service  *LivenessService
	logger   *slog.Logger
	interval time.Duration
}

func NewJanitor(service *LivenessService, logger *slog.Logger, interval time.Duration) *Janitor {
	return &Janitor{
		service:  service,
		logger:   logger,
		interval: interval,
	}
}

// Run starts the reap loop. Blocks until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info("session janitor started", "interval", j.interval)

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("session janitor stopped")
			return
		case <-ticker.C:
			if n := j.service.ReapExpired(ctx); n > 0 {
				j.logger.Debug("expired sessions reaped", "count", n)
			}
		}
	}
}
