package events

// EventData is the interface that all event data types must implement
// This allows for type-safe event data while maintaining flexibility
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// PositionChangedData contains data for PositionAdded and PositionUpdated events
type PositionChangedData struct {
	Ticker         string  `json:"ticker"`
	PreviousTicker string  `json:"previous_ticker,omitempty"`
	Shares         int64   `json:"shares"`
	TotalValue     float64 `json:"total_value"`
	ReturnPct      float64 `json:"return_pct"`
}

// EventType returns PositionUpdated when a previous ticker is set, PositionAdded otherwise
func (d *PositionChangedData) EventType() EventType {
	if d.PreviousTicker != "" {
		return PositionUpdated
	}
	return PositionAdded
}

// PositionDeletedData contains data for PositionDeleted events
type PositionDeletedData struct {
	Ticker  string `json:"ticker"`
	Removed int    `json:"removed"`
}

// EventType returns the event type for PositionDeletedData
func (d *PositionDeletedData) EventType() EventType {
	return PositionDeleted
}

// PortfolioClearedData contains data for PortfolioCleared events
type PortfolioClearedData struct {
	Removed int `json:"removed"`
}

// EventType returns the event type for PortfolioClearedData
func (d *PortfolioClearedData) EventType() EventType {
	return PortfolioCleared
}

// PortfolioImportedData contains data for PortfolioImported events
type PortfolioImportedData struct {
	Source    string `json:"source"`
	Positions int    `json:"positions"`
}

// EventType returns the event type for PortfolioImportedData
func (d *PortfolioImportedData) EventType() EventType {
	return PortfolioImported
}

// SnapshotRecordedData contains data for SnapshotRecorded events
type SnapshotRecordedData struct {
	TotalValue   float64 `json:"total_value"`
	NumPositions int     `json:"num_positions"`
	Retained     int     `json:"retained"`
}

// EventType returns the event type for SnapshotRecordedData
func (d *SnapshotRecordedData) EventType() EventType {
	return SnapshotRecorded
}
