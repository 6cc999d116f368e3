// Package snapshots keeps a rolling in-memory history of portfolio summaries
// so the dashboard can chart how the portfolio moved during a session.
package snapshots

import (
	"sync"
	"time"

	"github.com/aristath/folio/internal/events"
	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/rs/zerolog"
)

const moduleName = "snapshots"

// Snapshot captures the portfolio aggregates at one point in time
type Snapshot struct {
	Timestamp time.Time             `json:"timestamp"`
	Summary   portfolio.Summary     `json:"summary"`
	Risk      portfolio.RiskMetrics `json:"risk"`
}

// Source provides the aggregates a snapshot records
type Source interface {
	GetSummary() portfolio.Summary
	GetRiskMetrics() portfolio.RiskMetrics
}

// EventEmitter publishes snapshot notifications
type EventEmitter interface {
	EmitTyped(module string, data events.EventData)
}

// Recorder samples a Source and retains the most recent snapshots.
// It satisfies scheduler.Job.
type Recorder struct {
	source    Source
	emitter   EventEmitter
	retention int
	now       func() time.Time

	mu        sync.RWMutex
	snapshots []Snapshot

	log zerolog.Logger
}

// NewRecorder creates a recorder keeping at most retention snapshots.
// retention < 1 is treated as 1.
func NewRecorder(source Source, emitter EventEmitter, retention int, log zerolog.Logger) *Recorder {
	if retention < 1 {
		retention = 1
	}
	return &Recorder{
		source:    source,
		emitter:   emitter,
		retention: retention,
		now:       time.Now,
		snapshots: make([]Snapshot, 0, retention),
		log:       log.With().Str("service", "snapshots").Logger(),
	}
}

// Name implements scheduler.Job
func (r *Recorder) Name() string {
	return "portfolio_snapshot"
}

// Run implements scheduler.Job
func (r *Recorder) Run() error {
	r.Record()
	return nil
}

// Record takes a snapshot now, evicting the oldest one when full
func (r *Recorder) Record() Snapshot {
	snap := Snapshot{
		Timestamp: r.now().UTC(),
		Summary:   r.source.GetSummary(),
		Risk:      r.source.GetRiskMetrics(),
	}

	r.mu.Lock()
	if len(r.snapshots) == r.retention {
		copy(r.snapshots, r.snapshots[1:])
		r.snapshots = r.snapshots[:len(r.snapshots)-1]
	}
	r.snapshots = append(r.snapshots, snap)
	retained := len(r.snapshots)
	r.mu.Unlock()

	r.log.Debug().
		Float64("total_value", snap.Summary.TotalValue).
		Int("positions", snap.Summary.NumPositions).
		Msg("Snapshot recorded")

	if r.emitter != nil {
		r.emitter.EmitTyped(moduleName, &events.SnapshotRecordedData{
			TotalValue:   snap.Summary.TotalValue,
			NumPositions: snap.Summary.NumPositions,
			Retained:     retained,
		})
	}
	return snap
}

// List returns up to limit of the most recent snapshots, oldest first.
// limit <= 0 returns everything retained.
func (r *Recorder) List(limit int) []Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(r.snapshots) {
		start = len(r.snapshots) - limit
	}
	out := make([]Snapshot, len(r.snapshots)-start)
	copy(out, r.snapshots[start:])
	return out
}

// Latest returns the most recent snapshot, if any
func (r *Recorder) Latest() (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.snapshots) == 0 {
		return Snapshot{}, false
	}
	return r.snapshots[len(r.snapshots)-1], true
}
