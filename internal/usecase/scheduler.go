package usecase

import (
	"context"
	"time"

	"NewsCurator/internal/ports"
)

// Scheduler wires the interval driver with the refresh use case.
type Scheduler struct {
	driver  ports.Scheduler
	refresh *Refresh
}

// NewScheduler returns a helper to start/stop recurring refreshes.
func NewScheduler(driver ports.Scheduler, refresh *Refresh) *Scheduler {
	return &Scheduler{driver: driver, refresh: refresh}
}

// Start registers the refresh with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.refresh == nil {
		return nil
	}

	job := func(trigger time.Time) {
		_ = s.refresh.Run(ctx, trigger)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
