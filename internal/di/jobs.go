// Package di provides dependency injection for scheduler jobs.
package di

import (
	"fmt"

	"github.com/aristath/folio/internal/config"
	"github.com/aristath/folio/internal/scheduler"
	"github.com/rs/zerolog"
)

// RegisterJobs creates the scheduler and registers all background jobs.
// The scheduler is not started here.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	container.Scheduler = scheduler.New(log)

	if err := container.Scheduler.AddJob(cfg.SnapshotSchedule, container.SnapshotRecorder); err != nil {
		return fmt.Errorf("failed to register snapshot job: %w", err)
	}

	return nil
}
