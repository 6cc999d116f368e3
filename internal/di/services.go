// Package di provides dependency injection for service implementations.
package di

import (
	"fmt"

	"github.com/aristath/folio/internal/config"
	"github.com/aristath/folio/internal/events"
	"github.com/aristath/folio/internal/modules/historical"
	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/aristath/folio/internal/modules/snapshots"
	"github.com/rs/zerolog"
)

// InitializeServices creates all services and stores them in the container
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	// Event system first; every mutating service publishes through it
	container.EventBus = events.NewBus(log)
	container.EventManager = events.NewManager(container.EventBus, log)

	container.PositionStore = portfolio.NewStore()
	container.PortfolioService = portfolio.NewPortfolioService(
		container.PositionStore,
		portfolio.Calculator{RejectNegative: cfg.StrictValidation},
		container.EventManager,
		nil,
		log,
	)

	container.HistoryGenerator = historical.NewGenerator(nil, nil, cfg.HistoryMaxDays)

	container.SnapshotRecorder = snapshots.NewRecorder(
		container.PortfolioService,
		container.EventManager,
		cfg.SnapshotRetention,
		log,
	)

	log.Info().
		Bool("strict_validation", cfg.StrictValidation).
		Int("snapshot_retention", cfg.SnapshotRetention).
		Msg("Services initialized")

	return nil
}
