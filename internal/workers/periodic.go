// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
)

// Periodic runs a task once on start and then every interval until the
// context passed to Run is cancelled. A non-positive interval disables it.
type Periodic struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error

	wg     sync.WaitGroup
	logger *logger.Logger
}

func NewPeriodic(name string, interval time.Duration, task func(ctx context.Context) error, logger *logger.Logger) *Periodic {
	return &Periodic{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
	}
}

func (p *Periodic) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.logger.Info().Str("worker", p.name).Msg("worker disabled")
		return
	}

	p.logger.Info().Str("worker", p.name).Dur("interval", p.interval).Msg("worker started")
	p.wg.Go(func() { p.loop(ctx) })
}

func (p *Periodic) Wait() {
	p.wg.Wait()
}

func (p *Periodic) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Str("worker", p.name).Msg("worker stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Periodic) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.task(ctx); err != nil {
		p.logger.Err(err).Str("worker", p.name).Msg("worker run failed")
	}
}
