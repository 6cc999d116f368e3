/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * passed to the server for access to services.
 */
package di

import (
	"github.com/aristath/folio/internal/config"
	"github.com/aristath/folio/internal/events"
	"github.com/aristath/folio/internal/modules/historical"
	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/aristath/folio/internal/modules/snapshots"
	"github.com/aristath/folio/internal/scheduler"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Events
	EventBus     *events.Bus
	EventManager *events.Manager

	// Portfolio
	PositionStore    *portfolio.Store
	PortfolioService *portfolio.PortfolioService

	// Supporting modules
	HistoryGenerator *historical.Generator
	SnapshotRecorder *snapshots.Recorder

	// Background jobs
	Scheduler *scheduler.Scheduler
}
