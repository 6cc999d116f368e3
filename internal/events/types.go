// Package events provides the in-process event bus used to push portfolio changes to dashboards.
package events

import (
	"time"
)

// EventType represents different event types
type EventType string

const (
	PositionAdded     EventType = "POSITION_ADDED"
	PositionUpdated   EventType = "POSITION_UPDATED"
	PositionDeleted   EventType = "POSITION_DELETED"
	PortfolioCleared  EventType = "PORTFOLIO_CLEARED"
	PortfolioImported EventType = "PORTFOLIO_IMPORTED"
	SnapshotRecorded  EventType = "SNAPSHOT_RECORDED"
)

// AllTypes lists every event type
var AllTypes = []EventType{
	PositionAdded,
	PositionUpdated,
	PositionDeleted,
	PortfolioCleared,
	PortfolioImported,
	SnapshotRecorded,
}

// Event represents a system event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}
