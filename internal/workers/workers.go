package workers

import (
	"context"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the session sweeper and the rate limit sweeper, plus
// the health prober when both db and health are given.
func NewWorkers(services *service.Services, db Pinger, health HealthReporter, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{workers: []Worker{
		NewSessionSweeper(services.SessionService, cfg.SessionSweepInterval, logger),
		NewRateLimitSweeper(services.Limiter, cfg.RateLimitSweepInterval, logger),
	}}

	if db != nil && health != nil {
		w.workers = append(w.workers, NewHealthProber(db, health, cfg.HealthProbeInterval, logger))
	}

	return w
}

// Run starts every worker in registration order.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Wait blocks until the goroutines of all started workers have exited.
func (w *Workers) Wait() {
	for _, worker := range w.workers {
		if wt, ok := worker.(waiter); ok {
			wt.Wait()
		}
	}
}
