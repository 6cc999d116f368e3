package server

import (
	"strings"
	"time"

	"github.com/aristath/folio/internal/events"
	"github.com/aristath/folio/internal/utils"
	"github.com/rs/zerolog"
)

const (
	feedBufferSize    = 100
	heartbeatInterval = 30 * time.Second
)

// eventFeed buffers bus events for one streaming client
type eventFeed struct {
	bus  *events.Bus
	subs []events.Subscription
	ch   chan *events.Event
	log  zerolog.Logger
}

// newEventFeed subscribes to eventTypes and buffers matching events.
// Events are dropped, not queued, once the buffer is full.
func newEventFeed(bus *events.Bus, eventTypes []events.EventType, log zerolog.Logger) *eventFeed {
	f := &eventFeed{
		bus: bus,
		ch:  make(chan *events.Event, feedBufferSize),
		log: log,
	}

	handler := func(event *events.Event) {
		select {
		case f.ch <- event:
		default:
			f.log.Warn().
				Str("event_type", string(event.Type)).
				Msg("Event channel full, dropping event")
		}
	}

	for _, eventType := range eventTypes {
		f.subs = append(f.subs, bus.Subscribe(eventType, handler))
	}
	return f
}

// Events returns the buffered event channel
func (f *eventFeed) Events() <-chan *events.Event {
	return f.ch
}

// Close unsubscribes from the bus. The channel is left open since a
// concurrent Emit may still deliver to it.
func (f *eventFeed) Close() {
	for _, sub := range f.subs {
		f.bus.Unsubscribe(sub)
	}
	f.subs = nil
}

// parseTypesFilter reads a comma-separated ?types= value.
// An empty filter selects every known event type.
func parseTypesFilter(raw string) []events.EventType {
	values := utils.ParseCSV(raw)
	if len(values) == 0 {
		return events.AllTypes
	}

	seen := make(map[events.EventType]bool)
	var out []events.EventType
	for _, v := range values {
		eventType := events.EventType(strings.ToUpper(v))
		if seen[eventType] {
			continue
		}
		seen[eventType] = true
		out = append(out, eventType)
	}
	return out
}

// eventMessage is the wire form shared by the SSE and websocket feeds
func eventMessage(event *events.Event) map[string]interface{} {
	return map[string]interface{}{
		"id":        event.ID,
		"type":      string(event.Type),
		"module":    event.Module,
		"timestamp": event.Timestamp.Format(time.RFC3339),
		"data":      event.Data,
	}
}

func connectedMessage() map[string]interface{} {
	return map[string]interface{}{
		"type":    "connected",
		"message": "Connected to portfolio event stream",
	}
}

func heartbeatMessage() map[string]interface{} {
	return map[string]interface{}{
		"type":      "heartbeat",
		"timestamp": time.Now().Format(time.RFC3339),
	}
}
