package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// PositionCounter reports how many positions are stored
type PositionCounter interface {
	Count() int
}

// JobCounter reports how many background jobs are scheduled
type JobCounter interface {
	JobCount() int
}

// SystemStatusResponse is returned by GET /api/system/status
type SystemStatusResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	StartedAt     string  `json:"started_at"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	Positions     int     `json:"positions"`
	ScheduledJobs int     `json:"scheduled_jobs"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float64 `json:"ram_percent"`
	Goroutines    int     `json:"goroutines"`
	GoVersion     string  `json:"go_version"`
}

// SystemHandlers handles system monitoring requests
type SystemHandlers struct {
	positions PositionCounter
	jobs      JobCounter
	startedAt time.Time
	stats     func() (float64, float64)
	log       zerolog.Logger
}

// NewSystemHandlers creates a new system handlers instance.
// jobs may be nil when no scheduler is running.
func NewSystemHandlers(positions PositionCounter, jobs JobCounter, log zerolog.Logger) *SystemHandlers {
	h := &SystemHandlers{
		positions: positions,
		jobs:      jobs,
		startedAt: time.Now(),
		log:       log.With().Str("component", "system_handlers").Logger(),
	}
	h.stats = h.getSystemStats
	return h
}

// HandleSystemStatus returns process and host status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPercent, ramPercent := h.stats()

	scheduled := 0
	if h.jobs != nil {
		scheduled = h.jobs.JobCount()
	}

	response := SystemStatusResponse{
		Status:        "ok",
		Version:       Version,
		StartedAt:     h.startedAt.UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Positions:     h.positions.Count(),
		ScheduledJobs: scheduled,
		CPUPercent:    cpuPercent,
		RAMPercent:    ramPercent,
		Goroutines:    runtime.NumGoroutine(),
		GoVersion:     runtime.Version(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode system status")
	}
}

// getSystemStats calculates CPU and RAM usage percentages
// Uses a short 100ms CPU sample so the endpoint stays responsive
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	// Get memory statistics (instant, no blocking)
	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
