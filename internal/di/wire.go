// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/aristath/folio/internal/config"
	"github.com/rs/zerolog"
)

// Wire initializes all dependencies and returns a fully configured container
// This is the main entry point for dependency injection
// Order of operations:
// 1. Initialize services
// 2. Register jobs
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	container := &Container{Config: cfg}

	// Step 1: Initialize services
	if err := InitializeServices(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Step 2: Register jobs
	if err := RegisterJobs(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, nil
}
